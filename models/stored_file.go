package models

import "time"

// StoredFile describes an upload that passed the gate and was written to
// disk. It is transient: the only durable reference is the Image field of
// the resource that ends up owning it.
type StoredFile struct {
	OriginalName string    `json:"originalName"`
	MimeType     string    `json:"mimeType"`
	Size         int64     `json:"size"`
	StorageName  string    `json:"storageName"`
	Path         string    `json:"path"`
	StoredAt     time.Time `json:"storedAt"`
}
