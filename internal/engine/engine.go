// Package engine wires the extraction pipeline together: scan the raw text,
// normalize the account, classify withdrawals, validate, and build the final
// response. Processing one document is a pure function of the input pair and
// the read-only registry, so engines are safe for concurrent use.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/manateeit/taxtools/internal/classify"
	"github.com/manateeit/taxtools/internal/extract"
	"github.com/manateeit/taxtools/internal/model"
	"github.com/manateeit/taxtools/internal/registry"
	"github.com/manateeit/taxtools/internal/validate"
)

// Engine processes bank-statement text into success or error responses.
type Engine struct {
	registry   *registry.Registry
	classifier *classify.Classifier
	validator  *validate.Validator
}

// Option adjusts engine construction.
type Option func(*options)

type options struct {
	validatorOpts []validate.Option
}

// WithStrictTransactions makes a malformed transaction row void the whole
// statement instead of being skipped.
func WithStrictTransactions() Option {
	return func(o *options) {
		o.validatorOpts = append(o.validatorOpts, validate.WithStrictTransactions())
	}
}

// WithValidationOrder overrides the order in which field rules are checked,
// which decides the winning error code when several rules fail at once.
func WithValidationOrder(order ...model.ErrorCode) Option {
	return func(o *options) {
		o.validatorOpts = append(o.validatorOpts, validate.WithOrder(order...))
	}
}

// New builds an engine around the given account registry.
func New(reg *registry.Registry, opts ...Option) (*Engine, error) {
	if reg == nil {
		return nil, fmt.Errorf("engine requires an account registry")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	classifier := classify.New()
	validator, err := validate.New(classifier, o.validatorOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build validator: %w", err)
	}

	return &Engine{
		registry:   reg,
		classifier: classifier,
		validator:  validator,
	}, nil
}

var filenameShape = regexp.MustCompile(`^[^/]+\.pdf$`)

// Process extracts one document. Every input produces exactly one response
// shape; no failure mode escapes as a panic or a Go error.
func (e *Engine) Process(rawText, sourceFilename string) (resp model.Response) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("extraction panicked",
				"filename", sourceFilename,
				"panic", r)
			resp = Failure(model.ErrCodeParse, fmt.Sprintf("internal extraction failure: %v", r))
		}
	}()

	filename, ok := cleanFilename(sourceFilename)
	if !ok {
		return Failure(model.ErrCodeParse, fmt.Sprintf("source filename %q is not a plain .pdf name", sourceFilename))
	}
	if !utf8.ValidString(rawText) {
		return Failure(model.ErrCodeParse, "statement text is not valid UTF-8")
	}
	if strings.TrimSpace(rawText) == "" {
		return Failure(model.ErrCodeParse, "statement text is empty")
	}

	candidates := extract.Scan(rawText)
	account := e.registry.Normalize(
		candidates.AccountRaw.Or(""),
		candidates.CompanyHint.Or(""),
	)

	record, errRec := e.validator.Validate(validate.Input{
		Filename:   filename,
		Candidates: candidates,
		Account:    account,
	})
	if errRec != nil {
		return Response(nil, errRec)
	}
	return Success(*record)
}

// ProcessContext is Process with caller-imposed cancellation: an expired or
// canceled context maps to PARSE_ERROR, matching the treatment of any other
// lower-level failure.
func (e *Engine) ProcessContext(ctx context.Context, rawText, sourceFilename string) model.Response {
	if err := ctx.Err(); err != nil {
		return Failure(model.ErrCodeParse, fmt.Sprintf("extraction aborted: %v", err))
	}

	resp := e.Process(rawText, sourceFilename)

	if err := ctx.Err(); err != nil {
		return Failure(model.ErrCodeParse, fmt.Sprintf("extraction aborted: %v", err))
	}
	return resp
}

// cleanFilename reduces a source path to its final component and checks the
// output-contract shape: a plain name ending in .pdf with no separators.
func cleanFilename(source string) (string, bool) {
	name := source
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	if !filenameShape.MatchString(name) {
		return "", false
	}
	return name, true
}
