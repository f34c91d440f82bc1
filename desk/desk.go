// Package desk is the desktop-embedded front-end: a newline-delimited JSON
// command bridge spoken over stdin/stdout by the desktop shell. Every
// command maps one-to-one onto the same service operations the HTTP API
// exposes; this package only frames requests and responses.
package desk

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/flowspace/flowspace-backend/service"
)

// maxLineSize bounds a single command line. Image payloads are inlined as
// data URIs, so lines can be large.
const maxLineSize = 16 * 1024 * 1024

// request is one inbound command line.
type request struct {
	ID      int64           `json:"id"`
	Command string          `json:"command"`
	Token   string          `json:"token,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// response is one outbound reply line. Exactly one reply is written per
// request, carrying the request's id.
type response struct {
	ID    int64         `json:"id"`
	OK    bool          `json:"ok"`
	Data  any           `json:"data,omitempty"`
	Error *commandError `json:"error,omitempty"`
}

// commandError mirrors the HTTP error body so the desktop shell shares its
// error rendering with the web client.
type commandError struct {
	Message string `json:"error"`
	Status  int    `json:"status"`
	Field   string `json:"field,omitempty"`
}

type Bridge struct {
	svc    *service.Service
	logger zerolog.Logger
}

func NewBridge(svc *service.Service) *Bridge {
	return &Bridge{
		svc:    svc,
		logger: log.With().Str("component", "desk").Logger(),
	}
}

// Run reads command lines from r until EOF, writing one reply line per
// command to w. A line that is not valid JSON gets an error reply with
// id 0; it cannot be correlated to anything better.
func (b *Bridge) Run(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			b.logger.Warn().Err(err).Msg("malformed command line")
			if err := encoder.Encode(errorResponse(0, badRequest("malformed command"))); err != nil {
				return err
			}
			continue
		}

		if err := encoder.Encode(b.dispatch(req)); err != nil {
			return err
		}
	}
	return scanner.Err()
}
