package command

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/navidys/tvxwidgets"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"

	config "github.com/erdemkosk/udplink/internal"
	"github.com/erdemkosk/udplink/internal/logic"
)

const pulseInterval = 200 * time.Millisecond

type UiCommand struct {
}

func (command UiCommand) Execute(cmd *cobra.Command, args []string) {
	configuration := loadConfiguration(cmd.Flags())
	app := tview.NewApplication()

	logChannel := make(chan string, config.LOG_BUFFER)

	session, err := NewSession(configuration, logChannel)
	cobra.CheckErr(err)

	mainFlex, logsBox, gauge, input := generateUI(app, configuration)

	done := listenForLogs(logChannel, tview.ANSIWriter(logsBox))
	stopPulse := make(chan struct{})
	go pulseWhileReceiving(app, gauge, session, stopPulse)

	input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}

		line := input.GetText()
		input.SetText("")

		if !session.Handle(line) {
			app.Stop()
		}
	})

	session.StartReceiver()

	if err := app.SetRoot(mainFlex, true).SetFocus(input).EnableMouse(true).Run(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "UI error:", err)
	}

	close(stopPulse)
	session.Close()

	close(logChannel)
	<-done
}

func pulseWhileReceiving(app *tview.Application, gauge *tvxwidgets.ActivityModeGauge, session *Session, stop <-chan struct{}) {
	ticker := time.NewTicker(pulseInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			receiving := session.Server.IsStarted()
			app.QueueUpdateDraw(func() {
				if receiving {
					gauge.Pulse()
				} else {
					gauge.Reset()
				}
			})
		}
	}
}

func generateUI(app *tview.Application, configuration *config.Configuration) (*tview.Flex, *tview.TextView, *tvxwidgets.ActivityModeGauge, *tview.InputField) {
	gauge := tvxwidgets.NewActivityModeGauge()
	gauge.SetTitle("receiving")
	gauge.SetPgBgColor(tcell.ColorOrange)
	gauge.SetBorder(true)

	configBox := tview.NewTextView()
	configBox.SetText(configuration.String() + "\nhost            = " + logic.DescribeHost()).
		SetTextAlign(tview.AlignLeft).
		SetBorder(true).
		SetTitle("Configuration")

	input := tview.NewInputField()
	input.SetLabel("> ").
		SetFieldWidth(0).
		SetFieldBackgroundColor(tcell.ColorDarkSlateGray).
		SetBorder(true).
		SetTitle(usage())

	logBox := tview.NewTextView()
	logBox.SetBorder(true)
	logBox.SetTitle("Logs")
	logBox.SetTextAlign(tview.AlignLeft)
	logBox.SetDynamicColors(true)
	logBox.SetScrollable(true)
	logBox.SetChangedFunc(func() {
		app.Draw()
	})

	grid := tview.NewGrid().
		SetRows(3, 0).
		SetColumns(0).
		SetBorders(false).
		AddItem(gauge, 0, 0, 1, 1, 0, 0, false).
		AddItem(configBox, 1, 0, 1, 1, 0, 0, false)

	flex := tview.NewFlex().
		AddItem(grid, 0, 1, false).
		AddItem(logBox, 0, 2, false)

	iconBox := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetText(config.AppLogo)

	mainFlex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(iconBox, 6, 0, false).
		AddItem(flex, 0, 1, false).
		AddItem(input, 3, 0, true)

	return mainFlex, logBox, gauge, input
}
