package server

import "solidity-lsp/internal/rpc"

func newNotification(method string, params interface{}) (rpc.Message, error) {
	return rpc.NewNotification(method, params)
}

// emitLogTrace is installed as a tracelog.Logger sink so every log line the
// server produces is also pushed to the client as $/logTrace, gated on the
// trace level negotiated during initialize (spec §4.7 addition: "$/logTrace
// emission"). It is called synchronously from whichever goroutine logs and
// takes s.mu, so handlers release s.mu before calling anything that logs.
// It must not itself log: the logger would call it again without end.
func (s *Server) emitLogTrace(line string) {
	s.mu.Lock()
	level := s.traceLevel
	t := s.transport
	s.mu.Unlock()

	if level == "" || level == "off" || t == nil {
		return
	}

	notification, err := newNotification("$/logTrace", map[string]interface{}{"message": line})
	if err != nil {
		return
	}
	_ = t.Send(notification)
}
