package entity

import (
	"fmt"
	"time"
)

// Kind identifies one of the catalogs users can mark.
type Kind uint8

const (
	KindMovie Kind = iota + 1
	KindTV
	KindNovel
	KindUploader
)

var kindNames = map[Kind]string{
	KindMovie:    "movie",
	KindTV:       "tv",
	KindNovel:    "novel",
	KindUploader: "uploader",
}

// Kinds lists every catalog kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindMovie, KindTV, KindNovel, KindUploader}
}

// ParseKind maps the lowercase wire name to a Kind. Matching is case-sensitive.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// HasCast reports whether entries of this kind carry actors.
func (k Kind) HasCast() bool {
	return k == KindMovie || k == KindTV
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, uint8(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

type CatalogItem struct {
	ID        uint      `json:"id"`
	Kind      Kind      `json:"kind"`
	Name      string    `json:"name"`
	PicURL    string    `json:"pic_url"`
	CreatedAt time.Time `json:"created_at"`
}

type Actor struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	PicURL    string    `json:"pic_url"`
	CreatedAt time.Time `json:"created_at"`
}

type Mark struct {
	UserID    string    `json:"user_id"`
	Kind      Kind      `json:"kind"`
	TargetID  uint      `json:"target_id"`
	CreatedAt time.Time `json:"created_at"`
}
