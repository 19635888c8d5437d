package docs

import (
	"context"
	"fmt"
	"strings"

	docsapi "google.golang.org/api/docs/v1"

	"github.com/teemow/docsmith/internal/instrumentation"
	"github.com/teemow/docsmith/internal/logging"
)

// codeFontFamily is the font applied to code spans.
const codeFontFamily = "Courier New"

// maxBatchSize caps how many requests go into one batchUpdate call.
const maxBatchSize = 500

// BatchUpdater executes a batch of Docs API requests against one
// document. *Client satisfies it.
type BatchUpdater interface {
	BatchUpdate(ctx context.Context, documentID string, requests []*docsapi.Request) error
}

// BatchRecorder receives the outcome of each dispatched plan.
// *instrumentation.Metrics satisfies it.
type BatchRecorder interface {
	RecordBatchUpdate(ctx context.Context, status string, operations int)
}

// Dispatcher validates a plan, translates it into Docs API requests
// and sends it in batches. Each batch applies atomically on the API
// side; when a later batch fails, the earlier ones stay applied and
// the returned BatchError says how far the plan got.
type Dispatcher struct {
	updater   BatchUpdater
	recorder  BatchRecorder
	logger    logging.Logger
	batchSize int
}

// NewDispatcher creates a Dispatcher sending through updater.
func NewDispatcher(updater BatchUpdater) *Dispatcher {
	return &Dispatcher{
		updater:   updater,
		logger:    logging.DefaultLogger(),
		batchSize: maxBatchSize,
	}
}

// SetRecorder sets an optional recorder for dispatch outcomes.
func (d *Dispatcher) SetRecorder(r BatchRecorder) {
	d.recorder = r
}

// SetLogger replaces the dispatch logger.
func (d *Dispatcher) SetLogger(l logging.Logger) {
	if l != nil {
		d.logger = l
	}
}

func (d *Dispatcher) record(ctx context.Context, status string, operations int) {
	if d.recorder != nil {
		d.recorder.RecordBatchUpdate(ctx, status, operations)
	}
}

// Dispatch validates and executes ops against the document.
func (d *Dispatcher) Dispatch(ctx context.Context, documentID string, ops []Operation) error {
	if len(ops) == 0 {
		return nil
	}
	if err := Validate(ops); err != nil {
		return fmt.Errorf("invalid plan: %w", err)
	}

	requests := make([]*docsapi.Request, 0, len(ops))
	for i, op := range ops {
		req, err := requestFor(op)
		if err != nil {
			return fmt.Errorf("operation %d: %w", i, err)
		}
		requests = append(requests, req)
	}

	ctx, span := instrumentation.StartGoogleAPISpan(ctx, instrumentation.ServiceDocs, instrumentation.OperationBatchUpdate,
		instrumentation.NewSpanAttributeBuilder().
			WithResource("document", documentID).
			WithBatchSize(len(requests)).
			Build()...)
	defer span.End()

	applied := 0
	for applied < len(requests) {
		end := applied + d.batchSize
		if end > len(requests) {
			end = len(requests)
		}
		instrumentation.AddSpanEvent(span, "batch dispatched",
			instrumentation.NewSpanAttributeBuilder().WithBatchSize(end-applied).Build()...)
		if err := d.updater.BatchUpdate(ctx, documentID, requests[applied:end]); err != nil {
			instrumentation.SetSpanError(span, err)
			d.record(ctx, logging.StatusError, len(requests))
			d.logger.Error("batch update failed",
				logging.DocumentID(documentID),
				logging.Requests(len(requests)),
				logging.Applied(applied),
				logging.Err(err))
			return &BatchError{Applied: applied, Total: len(requests), Err: err}
		}
		applied = end
	}
	instrumentation.SetSpanSuccess(span)
	d.record(ctx, logging.StatusSuccess, len(requests))
	d.logger.Debug("batch update applied",
		logging.DocumentID(documentID),
		logging.Requests(len(requests)))
	return nil
}

// requestFor translates one Operation into a Docs API request.
func requestFor(op Operation) (*docsapi.Request, error) {
	switch op.Kind {
	case OpInsertText:
		return &docsapi.Request{
			InsertText: &docsapi.InsertTextRequest{
				Location: &docsapi.Location{Index: op.Start},
				Text:     op.Text,
			},
		}, nil

	case OpDeleteRange:
		return &docsapi.Request{
			DeleteContentRange: &docsapi.DeleteContentRangeRequest{
				Range: &docsapi.Range{StartIndex: op.Start, EndIndex: op.End},
			},
		}, nil

	case OpStyleParagraph:
		return &docsapi.Request{
			UpdateParagraphStyle: &docsapi.UpdateParagraphStyleRequest{
				Range: &docsapi.Range{StartIndex: op.Start, EndIndex: op.End},
				ParagraphStyle: &docsapi.ParagraphStyle{
					NamedStyleType: op.NamedStyle,
				},
				Fields: "namedStyleType",
			},
		}, nil

	case OpStyleText:
		style, fields, err := textStyleFor(op)
		if err != nil {
			return nil, err
		}
		return &docsapi.Request{
			UpdateTextStyle: &docsapi.UpdateTextStyleRequest{
				Range:     &docsapi.Range{StartIndex: op.Start, EndIndex: op.End},
				TextStyle: style,
				Fields:    fields,
			},
		}, nil

	case OpCreateList:
		return &docsapi.Request{
			CreateParagraphBullets: &docsapi.CreateParagraphBulletsRequest{
				Range:        &docsapi.Range{StartIndex: op.Start, EndIndex: op.End},
				BulletPreset: op.Preset,
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown operation kind %d", op.Kind)
	}
}

// textStyleFor builds the TextStyle and field mask for an OpStyleText.
// Listed boolean fields are force-sent so a false value clears the
// attribute instead of being dropped from the request body.
func textStyleFor(op Operation) (*docsapi.TextStyle, string, error) {
	style := &docsapi.TextStyle{}
	for _, field := range op.Fields {
		switch field {
		case FieldBold:
			style.Bold = op.Attr.Bold
			style.ForceSendFields = append(style.ForceSendFields, "Bold")
		case FieldItalic:
			style.Italic = op.Attr.Italic
			style.ForceSendFields = append(style.ForceSendFields, "Italic")
		case FieldUnderline:
			style.Underline = op.Attr.Underline
			style.ForceSendFields = append(style.ForceSendFields, "Underline")
		case FieldFontFamily:
			style.WeightedFontFamily = &docsapi.WeightedFontFamily{
				FontFamily: codeFontFamily,
			}
		case FieldLink:
			style.Link = &docsapi.Link{Url: op.Attr.LinkURL}
		default:
			return nil, "", fmt.Errorf("unknown text style field %q", field)
		}
	}
	return style, strings.Join(op.Fields, ","), nil
}
