package session

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/kbukum/scribe/errors"
	"github.com/kbukum/scribe/httpclient"
	"github.com/kbukum/scribe/logger"
)

const fileCategoryAudio = "AUDIO"

type createUploadPayload struct {
	OriginalName  string `json:"original_name"`
	FileType      int    `json:"file_type"`
	Name          string `json:"name"`
	AssociatingID string `json:"associating_id"`
	FileCategory  string `json:"file_category"`
	MimeType      string `json:"mime_type"`
}

type uploadRecord struct {
	ID           string `json:"id"`
	SignedURL    string `json:"signed_url"`
	InternalName string `json:"internal_name"`
}

type completeUploadPayload struct {
	UploadCompleted bool `json:"upload_completed"`
}

// AttachAudio uploads one audio blob against a session in three phases:
// create the upload record, transfer the bytes to the signed target, then
// confirm completion. Any phase failing leaves the upload unusable, so the
// caller aborts the whole cycle.
func (c *Client) AttachAudio(ctx context.Context, sessionID string, blob AudioBlob) error {
	if len(blob.Data) == 0 {
		return errors.Upload("no audio to upload")
	}
	mime := baseMIME(blob.MIME)

	resp, err := httpclient.Post[uploadRecord](ctx, c.http, c.filePath(""), createUploadPayload{
		OriginalName:  "audio.mp3",
		FileType:      1,
		Name:          uuid.NewString(),
		AssociatingID: sessionID,
		FileCategory:  fileCategoryAudio,
		MimeType:      mime,
	})
	if err != nil {
		return errors.Upload("could not create upload record").WithCause(err)
	}
	record := resp.Data
	if record.SignedURL == "" {
		return errors.Upload("upload record carried no signed url")
	}

	headers := map[string]string{
		"Content-Type":        mime,
		"Content-Disposition": "inline",
	}
	if err := httpclient.PutBytes(ctx, c.http, record.SignedURL, blob.Data, headers); err != nil {
		return errors.Upload("transfer to signed url failed").WithCause(err)
	}

	if _, err := httpclient.Patch[uploadRecord](ctx, c.http, c.filePath(record.ID),
		completeUploadPayload{UploadCompleted: true},
		map[string]string{"file_type": "SCRIBE", "associating_id": sessionID},
	); err != nil {
		return errors.Upload("could not confirm upload").WithCause(err)
	}

	c.log.Debug("audio attached", map[string]interface{}{
		logger.FieldSession: sessionID,
		"upload_id":         record.ID,
		"bytes":             len(blob.Data),
	})
	return nil
}

// baseMIME strips codec parameters, e.g. "audio/webm;codecs=opus".
func baseMIME(mime string) string {
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return strings.TrimSpace(mime)
}
