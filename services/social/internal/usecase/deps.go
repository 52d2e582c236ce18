package usecase

import (
	"io"

	"fun123/pkg/queue"
)

// Mailer queues outgoing mail. *queue.Client satisfies it.
type Mailer interface {
	PublishMailTask(task queue.MailTask) error
}

// AvatarStore keeps uploaded avatar files. *s3.Client satisfies it.
type AvatarStore interface {
	UploadFile(key string, body io.Reader, contentType string) (string, error)
	Exists(key string) (bool, error)
	DeleteFile(key string) error
}
