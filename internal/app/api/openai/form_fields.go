package openai

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/sashabaranov/go-openai"
)

const transcriptionsPath = "/audio/transcriptions"

// FormFieldDoer adds multipart fields that go-openai's AudioRequest cannot
// express, such as chunking_strategy, to transcription uploads.
type FormFieldDoer struct {
	next   openai.HTTPDoer
	fields map[string]string
}

func NewFormFieldDoer(next openai.HTTPDoer, fields map[string]string) *FormFieldDoer {
	return &FormFieldDoer{next: next, fields: fields}
}

func (d *FormFieldDoer) Do(req *http.Request) (*http.Response, error) {
	if len(d.fields) == 0 || req.Body == nil || !strings.HasSuffix(req.URL.Path, transcriptionsPath) {
		return d.next.Do(req)
	}

	mediaType, params, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
	if err != nil || mediaType != "multipart/form-data" || params["boundary"] == "" {
		return d.next.Do(req)
	}

	body, err := appendFormFields(req.Body, params["boundary"], d.fields)
	if err != nil {
		return nil, fmt.Errorf("adding form fields: %w", err)
	}

	out := req.Clone(req.Context())
	out.Body = io.NopCloser(bytes.NewReader(body))
	out.ContentLength = int64(len(body))
	out.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(body)), nil
	}
	return d.next.Do(out)
}

// appendFormFields re-encodes a multipart body with the same boundary, so the
// original Content-Type stays valid, and appends the missing fields.
func appendFormFields(body io.ReadCloser, boundary string, fields map[string]string) ([]byte, error) {
	defer body.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.SetBoundary(boundary); err != nil {
		return nil, err
	}

	present := make(map[string]bool)
	reader := multipart.NewReader(body, boundary)
	for {
		part, err := reader.NextRawPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		present[part.FormName()] = true

		dst, err := writer.CreatePart(part.Header)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(dst, part); err != nil {
			return nil, err
		}
	}

	names := lo.Keys(fields)
	slices.Sort(names)
	for _, name := range names {
		if present[name] || fields[name] == "" {
			continue
		}
		if err := writer.WriteField(name, fields[name]); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
