package dto

type UnreadCountDTO struct {
	Count uint64 `json:"count"`
}

type MarkReadDTO struct {
	IsRead bool `json:"is_read"`
}
