package autocomplete

import (
	"errors"
	"iter"
	"reflect"
	"strings"

	"github.com/google/uuid"

	"github.com/JoongWonSeo/json-autocomplete/internal/jsonext"
)

// StreamPartType indicates the type of stream part.
type StreamPartType string

const (
	// StreamPartTypeObject is emitted when a new partial object is available.
	StreamPartTypeObject StreamPartType = "object"

	// StreamPartTypeError is emitted when the accumulated text stops being a
	// JSON prefix. The stream ends after it.
	StreamPartTypeError StreamPartType = "error"

	// StreamPartTypeFinish is emitted once the deltas are exhausted.
	StreamPartTypeFinish StreamPartType = "finish"
)

// StreamPart represents a single chunk in the object stream.
type StreamPart struct {
	Type StreamPartType
	// ID identifies the stream the part belongs to.
	ID string
	// Delta is the text received since the previous part.
	Delta string
	// Text is the completed JSON for object parts and the raw accumulated
	// text for error and finish parts.
	Text   string
	Object any
	State  ParseState
	Error  error
}

// StreamResponse is an iterator over StreamPart.
type StreamResponse = iter.Seq[StreamPart]

// Accumulator collects streamed text and completes it on demand.
type Accumulator struct {
	buf  strings.Builder
	opts []Option
}

// NewAccumulator returns an empty accumulator completing with opts.
func NewAccumulator(opts ...Option) *Accumulator {
	return &Accumulator{opts: opts}
}

// Write appends a delta.
func (a *Accumulator) Write(delta string) {
	a.buf.WriteString(delta)
}

// Text returns everything written so far.
func (a *Accumulator) Text() string {
	return a.buf.String()
}

// Completed returns the completion of everything written so far.
func (a *Accumulator) Completed() (string, error) {
	return Complete(a.buf.String(), a.opts...)
}

// Reset discards everything written so far.
func (a *Accumulator) Reset() {
	a.buf.Reset()
}

// Stream completes the text accumulated from deltas after every delta and
// yields each distinct completion as an object part.
//
// Deltas that leave the text blank or do not change the completion produce
// no part. When the text stops being a JSON prefix an error part carrying
// the raw text is yielded and the stream ends. Otherwise the stream ends with a finish part carrying
// the raw text.
func Stream(deltas iter.Seq[string], opts ...Option) StreamResponse {
	return func(yield func(StreamPart) bool) {
		cfg := applyOptions(opts)
		id := uuid.NewString()
		logger := cfg.logger.With("stream", id)
		acc := NewAccumulator(opts...)

		var last string
		var pending strings.Builder
		for delta := range deltas {
			acc.Write(delta)
			pending.WriteString(delta)

			text := acc.Text()
			if jsonext.IsBlank(text) {
				continue
			}

			completed, err := complete([]byte(text), cfg)
			if err != nil {
				logger.Debug("stream stopped", "error", err, "length", len(text))
				yield(StreamPart{Type: StreamPartTypeError, ID: id, Delta: pending.String(), Text: text, Error: err, State: ParseStateFailed})
				return
			}
			if string(completed) == last {
				continue
			}

			obj, err := jsonext.Decode(completed)
			if err != nil {
				yield(StreamPart{Type: StreamPartTypeError, ID: id, Delta: pending.String(), Text: text, Error: err, State: ParseStateFailed})
				return
			}

			last = string(completed)
			state := ParseStateCompleted
			if len(completed) == len(text) {
				state = ParseStateSuccessful
			}
			if !yield(StreamPart{
				Type:   StreamPartTypeObject,
				ID:     id,
				Delta:  pending.String(),
				Text:   last,
				Object: obj,
				State:  state,
			}) {
				return
			}
			pending.Reset()
		}

		logger.Debug("stream finished", "length", len(acc.Text()))
		yield(StreamPart{Type: StreamPartTypeFinish, ID: id, Delta: pending.String(), Text: acc.Text()})
	}
}

// StreamObjectResult provides typed access to a streaming object.
type StreamObjectResult[T any] struct {
	stream StreamResponse
}

// StreamObject streams progressively more complete values of T decoded from
// deltas.
//
// Example:
//
//	stream := autocomplete.StreamObject[Recipe](deltas)
//
//	for partial := range stream.PartialObjectStream() {
//	    fmt.Printf("Progress: %s\n", partial.Name)
//	}
//
//	recipe, err := stream.Object() // Wait for final result
func StreamObject[T any](deltas iter.Seq[string], opts ...Option) *StreamObjectResult[T] {
	return &StreamObjectResult[T]{stream: Stream(deltas, opts...)}
}

// PartialObjectStream returns an iterator that yields progressively more complete objects.
// Only emits when the object actually changes (deduplication). Completions
// that are JSON null are skipped.
func (s *StreamObjectResult[T]) PartialObjectStream() iter.Seq[T] {
	return func(yield func(T) bool) {
		var lastObject T
		var hasEmitted bool

		for part := range s.stream {
			if part.Type != StreamPartTypeObject || part.Object == nil {
				continue
			}
			current, err := Decode[T](part.Object)
			if err != nil {
				continue
			}

			if !hasEmitted || !reflect.DeepEqual(current, lastObject) {
				if !yield(current) {
					return
				}
				lastObject = current
				hasEmitted = true
			}
		}
	}
}

// FullStream returns an iterator that yields all stream parts including errors.
func (s *StreamObjectResult[T]) FullStream() StreamResponse {
	return s.stream
}

// Object consumes the stream and returns the final object.
// Returns an error if streaming fails or no object was produced.
func (s *StreamObjectResult[T]) Object() (T, error) {
	var finalObject T
	var rawText string
	var lastError error
	hasObject := false

	for part := range s.stream {
		switch part.Type {
		case StreamPartTypeObject:
			obj, err := Decode[T](part.Object)
			if err != nil {
				lastError = err
				continue
			}
			finalObject = obj
			hasObject = true
			lastError = nil

		case StreamPartTypeError:
			lastError = part.Error
			rawText = part.Text

		case StreamPartTypeFinish:
			rawText = part.Text
		}
	}

	if lastError != nil {
		return finalObject, &NoObjectError{RawText: rawText, ParseError: lastError}
	}

	if !hasObject {
		return finalObject, &NoObjectError{
			RawText:    rawText,
			ParseError: errors.New("no object generated in stream"),
		}
	}

	return finalObject, nil
}
