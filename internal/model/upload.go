package model

import "time"

type UploadStatus string

const (
	UploadStatusPending  UploadStatus = "pending"
	UploadStatusReady    UploadStatus = "ready"
	UploadStatusRejected UploadStatus = "rejected"
)

// UploadSession tracks one direct-to-storage upload handled by the
// external uploader service. Created on initiate, polled until the
// scanner reaches a terminal status, then discarded.
type UploadSession struct {
	UploadID     string       `json:"uploadId"`
	UploadURL    string       `json:"uploadUrl,omitempty"`
	UploadStatus UploadStatus `json:"uploadStatus"`
	Filename     string       `json:"filename,omitempty"`
	ContentType  string       `json:"contentType,omitempty"`
	S3Key        string       `json:"s3Key,omitempty"`
	Reason       string       `json:"reason,omitempty"`
	InitiatedAt  time.Time    `json:"initiatedAt"`
}
