package engine

import (
	"encoding/json"
	"fmt"

	"github.com/manateeit/taxtools/internal/model"
)

// Success wraps a complete record in the success envelope.
func Success(record model.StatementRecord) model.Response {
	return model.Response{
		Status: model.StatusSuccess,
		Data:   &record,
	}
}

// Failure builds the error envelope for one of the five fixed codes.
func Failure(code model.ErrorCode, message string) model.Response {
	return model.Response{
		Status: model.StatusError,
		Error: &model.ErrorRecord{
			Code:    code,
			Message: message,
		},
	}
}

// Response assembles the envelope from whichever half the validator
// produced. Exactly one argument must be non-nil.
func Response(record *model.StatementRecord, errRec *model.ErrorRecord) model.Response {
	if errRec != nil {
		return model.Response{Status: model.StatusError, Error: errRec}
	}
	return model.Response{Status: model.StatusSuccess, Data: record}
}

// Encode marshals a response to its JSON wire form.
func Encode(resp model.Response, pretty bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(resp, "", "  ")
	} else {
		data, err = json.Marshal(resp)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode response: %w", err)
	}
	return data, nil
}
