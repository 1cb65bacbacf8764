package api

import (
	"bytes"
	"io"
	"mime/multipart"
)

// MultipartPayload accumulates form fields and file parts for upload
// endpoints. Passing one as a request body makes the pipeline send it with
// the writer's boundary-bearing content type instead of the JSON default.
type MultipartPayload struct {
	buf    bytes.Buffer
	writer *multipart.Writer
}

// NewMultipart creates an empty multipart payload
func NewMultipart() *MultipartPayload {
	p := &MultipartPayload{}
	p.writer = multipart.NewWriter(&p.buf)
	return p
}

// WriteField adds a plain form field
func (p *MultipartPayload) WriteField(name, value string) error {
	return p.writer.WriteField(name, value)
}

// WriteFile adds a file part read from r
func (p *MultipartPayload) WriteFile(fieldName, fileName string, r io.Reader) error {
	part, err := p.writer.CreateFormFile(fieldName, fileName)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, r)
	return err
}

// seal finalizes the payload and returns its content type and body
func (p *MultipartPayload) seal() (string, *bytes.Buffer, error) {
	if err := p.writer.Close(); err != nil {
		return "", nil, err
	}
	return p.writer.FormDataContentType(), &p.buf, nil
}
