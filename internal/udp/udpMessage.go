package udp

import (
	"fmt"
	"net"
)

// Result is what a receive attempt produces: *SuccessResult or *ErrorResult.
type Result interface {
	isResult()
}

type SuccessResult struct {
	SourceAddress *net.UDPAddr
	ReceivedData  []byte
}

type ErrorResult struct {
	Err error
}

func (*SuccessResult) isResult() {}
func (*ErrorResult) isResult()   {}

// Text decodes the payload as UTF-8, replacing invalid bytes with U+FFFD.
func (result *SuccessResult) Text() string {
	return string([]rune(string(result.ReceivedData)))
}

func (result *SuccessResult) String() string {
	return fmt.Sprintf("%d bytes from %s", len(result.ReceivedData), result.SourceAddress)
}

func (result *ErrorResult) Error() string {
	return result.Err.Error()
}
