package usecase

import (
	"encoding/json"

	"rental-service/internal/domain/entity"
)

// Where a property response came from
const (
	SourceMerged     = "ownerrez_merged_local"
	SourceRemoteOnly = "ownerrez_only"
	SourceLocalOnly  = "local_only"
	SourceNotFound   = "not_found"
)

// MergeResult is one of MergedBoth, RemoteOnly, LocalOnly or NotFound
type MergeResult interface {
	Source() string
	mergeResult()
}

// FoundProperty is a merge result that has a property to return
type FoundProperty interface {
	MergeResult
	json.Marshaler
	PropertyID() string
	Thumbnails() entity.Thumbnails
	SourceImage() string
	WithThumbnails(t entity.Thumbnails) FoundProperty
}

// MergedBoth is the remote record with the local data nested under localData
type MergedBoth struct {
	Remote entity.RemoteProperty
	Local  entity.LocalData
	images []string
}

// RemoteOnly is a remote record without a local document
type RemoteOnly struct {
	Remote entity.RemoteProperty
}

// LocalOnly is a local document whose remote lookup failed
type LocalOnly struct {
	Local       entity.LocalProperty
	RemoteError string
}

// NotFound means neither source has the property
type NotFound struct {
	RemoteError string
}

// MergeProperty combines the remote record and the local document. Remote fields always
// win; the local side contributes only the LocalData fields. Every input combination maps
// to exactly one result.
func MergeProperty(remote *entity.RemoteProperty, local *entity.LocalProperty, remoteErr string) MergeResult {
	switch {
	case remote != nil && local != nil:
		return MergedBoth{Remote: remote.Clone(), Local: entity.NewLocalData(local), images: local.Images}
	case remote != nil:
		return RemoteOnly{Remote: remote.Clone()}
	case local != nil:
		return LocalOnly{Local: *local, RemoteError: remoteErr}
	default:
		return NotFound{RemoteError: remoteErr}
	}
}

func (MergedBoth) Source() string { return SourceMerged }
func (RemoteOnly) Source() string { return SourceRemoteOnly }
func (LocalOnly) Source() string  { return SourceLocalOnly }
func (NotFound) Source() string   { return SourceNotFound }

func (MergedBoth) mergeResult() {}
func (RemoteOnly) mergeResult() {}
func (LocalOnly) mergeResult()  {}
func (NotFound) mergeResult()   {}

// MarshalJSON writes the remote fields with localData added
func (m MergedBoth) MarshalJSON() ([]byte, error) {
	local, err := json.Marshal(m.Local)
	if err != nil {
		return nil, err
	}
	return marshalRemoteWith(m.Remote, local)
}

// MarshalJSON writes the remote fields with localData set to null
func (m RemoteOnly) MarshalJSON() ([]byte, error) {
	return marshalRemoteWith(m.Remote, json.RawMessage("null"))
}

// MarshalJSON writes the local document with ownerRezData null and the remote error
func (m LocalOnly) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		entity.LocalProperty
		OwnerRezData  *json.RawMessage `json:"ownerRezData"`
		OwnerRezError *string          `json:"ownerRezError"`
	}{
		LocalProperty: m.Local,
		OwnerRezError: nullableString(m.RemoteError),
	})
}

func marshalRemoteWith(remote entity.RemoteProperty, localData json.RawMessage) ([]byte, error) {
	attrs := make(map[string]json.RawMessage, len(remote.Attributes)+1)
	for k, v := range remote.Attributes {
		attrs[k] = v
	}
	attrs["localData"] = localData
	return json.Marshal(attrs)
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (m MergedBoth) PropertyID() string { return m.Remote.ID() }
func (m RemoteOnly) PropertyID() string { return m.Remote.ID() }
func (m LocalOnly) PropertyID() string  { return m.Local.PropertyID() }

func (m MergedBoth) Thumbnails() entity.Thumbnails { return m.Remote.Thumbnails() }
func (m RemoteOnly) Thumbnails() entity.Thumbnails { return m.Remote.Thumbnails() }
func (m LocalOnly) Thumbnails() entity.Thumbnails  { return m.Local.Thumbnails() }

// SourceImage is the picture thumbnails are cut from
func (m MergedBoth) SourceImage() string {
	if img := remoteSourceImage(m.Remote); img != "" {
		return img
	}
	return firstImage(m.images)
}

func (m RemoteOnly) SourceImage() string { return remoteSourceImage(m.Remote) }
func (m LocalOnly) SourceImage() string  { return firstImage(m.Local.Images) }

func (m MergedBoth) WithThumbnails(t entity.Thumbnails) FoundProperty {
	m.Remote = m.Remote.WithThumbnails(t)
	return m
}

func (m RemoteOnly) WithThumbnails(t entity.Thumbnails) FoundProperty {
	m.Remote = m.Remote.WithThumbnails(t)
	return m
}

func (m LocalOnly) WithThumbnails(t entity.Thumbnails) FoundProperty {
	if t.Small != "" {
		m.Local.ThumbnailURL = t.Small
	}
	if t.Medium != "" {
		m.Local.ThumbnailURLMedium = t.Medium
	}
	if t.Large != "" {
		m.Local.ThumbnailURLLarge = t.Large
	}
	return m
}

func remoteSourceImage(p entity.RemoteProperty) string {
	for _, key := range []string{"image_url", entity.ThumbnailURLLargeKey, entity.ThumbnailURLMediumKey, entity.ThumbnailURLKey} {
		if v := p.String(key); v != "" {
			return v
		}
	}
	return ""
}

func firstImage(images []string) string {
	if len(images) == 0 {
		return ""
	}
	return images[0]
}
