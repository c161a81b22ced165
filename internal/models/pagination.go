package models

type PaginatedResponse struct {
	Data     any `json:"data"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// SectionResponse is one carousel window of a storefront section.
type SectionResponse struct {
	Section string `json:"section"`
	Items   any    `json:"items"`
	Start   int    `json:"start"`
	Next    int    `json:"next"`
	Prev    int    `json:"prev"`
	Size    int    `json:"size"`
	Total   int    `json:"total"`
}
