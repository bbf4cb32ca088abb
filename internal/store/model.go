package store

// Image is an uploaded picture. Data holds the base64 text of the original bytes.
type Image struct {
	ID       int64  `json:"id" db:"id"`
	Filename string `json:"filename" db:"filename"`
	Data     string `json:"data" db:"data"`
}

// Message is a short text note.
type Message struct {
	ID   int64  `json:"id" db:"id"`
	Text string `json:"text" db:"text"`
}
