package domain

import "strings"

// Category is a top-level product grouping on the catalog. The series slice
// order is display order and must survive edits unchanged.
type Category struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	NameUrdu        string          `json:"nameUrdu"`
	Image           string          `json:"image"`
	Description     string          `json:"description"`
	DescriptionUrdu string          `json:"descriptionUrdu"`
	Series          []ProductSeries `json:"series"`
}

// ProductSeries is a product line inside a category. IDs are unique within
// the parent category.
type ProductSeries struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	NameUrdu        string   `json:"nameUrdu"`
	Image           string   `json:"image"`
	Description     string   `json:"description"`
	DescriptionUrdu string   `json:"descriptionUrdu"`
	Sizes           []string `json:"sizes"`
	Specifications  []string `json:"specifications,omitempty"`
}

// ContactInfo is the single business contact record shown in the footer and
// on the contact page. No id; there is exactly one.
type ContactInfo struct {
	Phone    string `json:"phone" db:"phone"`
	WhatsApp string `json:"whatsapp" db:"whatsapp"`
	Email    string `json:"email" db:"email"`
	Address  string `json:"address" db:"address"`
}

// Inquiry is a customer lead from the public contact form. Immutable once
// created; the admin inbox can only delete it.
type Inquiry struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
	Date    string `json:"date"`
}

func (c Category) Clone() Category {
	out := c
	if c.Series != nil {
		out.Series = make([]ProductSeries, len(c.Series))
		for i, s := range c.Series {
			out.Series[i] = s.Clone()
		}
	}
	return out
}

func (s ProductSeries) Clone() ProductSeries {
	out := s
	out.Sizes = append([]string(nil), s.Sizes...)
	if s.Specifications != nil {
		out.Specifications = append([]string(nil), s.Specifications...)
	}
	return out
}

// CloneCatalog deep-copies a category tree so staged edits never alias the
// live snapshot.
func CloneCatalog(cats []Category) []Category {
	out := make([]Category, len(cats))
	for i, c := range cats {
		out[i] = c.Clone()
	}
	return out
}

// SplitSizes turns the comma-delimited sizes input into the stored sequence.
// Tokens are trimmed; empty or whitespace-only tokens are dropped.
func SplitSizes(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// JoinSizes renders a sizes sequence back into the editable form.
func JoinSizes(sizes []string) string {
	return strings.Join(sizes, ", ")
}
