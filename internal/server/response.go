package server

import (
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/thoreinstein/autoskills/internal/errors"
)

type failureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// decode copies the request arguments into v. Absent arguments decode as an
// empty object.
func decode(req mcp.CallToolRequest, v any) error {
	args := req.Params.Arguments
	if args == nil {
		args = map[string]any{}
	}
	raw, err := json.Marshal(args)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, "arguments are not JSON")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.Mark(errors.Wrap(err, "decoding arguments"), errors.ErrInvalidInput)
	}
	return nil
}

// reply encodes v as the single text block of a tool result.
func reply(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "encoding tool result")
	}
	return mcp.NewToolResultText(string(data)), nil
}

// fail reports err to the caller inside the result.
func fail(err error) (*mcp.CallToolResult, error) {
	return reply(failureResponse{Success: false, Error: errorText(err)})
}

// errorText renders err with the details attached to it, such as the stderr
// of a failed git clone, which Error() leaves out.
func errorText(err error) string {
	msg := err.Error()
	for _, d := range errors.Details(err) {
		if d = strings.TrimSpace(d); d != "" {
			msg += ": " + d
		}
	}
	return msg
}

// failf reports a fixed message to the caller inside the result.
func failf(msg string) (*mcp.CallToolResult, error) {
	return reply(failureResponse{Success: false, Error: msg})
}
