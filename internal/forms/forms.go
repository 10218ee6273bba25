// Package forms holds the validators that turn raw form input into draft
// entities. Validators are pure: they either produce a draft (without
// ownership fields, which the handler supplies) or a map of field-level
// error messages, and never touch storage themselves — existence checks
// are injected as lookup funcs.
package forms

import (
	"regexp"
	"strings"

	"github.com/akarpov/litepost/backend/internal/models"
)

// Errors maps a field name to its validation messages.
type Errors map[string][]string

// Add appends a message for a field.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Any reports whether any field failed validation.
func (e Errors) Any() bool {
	return len(e) > 0
}

// GroupLookup reports whether a group with the given ID exists.
type GroupLookup func(id uint) (bool, error)

// SlugLookup reports whether a group slug is already taken.
type SlugLookup func(slug string) (bool, error)

// PostForm is the new-post / edit-post submission. Image is the stored
// file name, set by the handler after the upload has been written.
type PostForm struct {
	Text    string `json:"text" form:"text"`
	GroupID *uint  `json:"group" form:"group"`
	Image   string `json:"image,omitempty" form:"-"`
}

// Validate checks the form and, on success, returns a Post draft with no
// author set. The returned error is infrastructural (lookup failure), not
// a validation outcome.
func (f *PostForm) Validate(groupExists GroupLookup) (*models.Post, Errors, error) {
	errs := Errors{}
	if strings.TrimSpace(f.Text) == "" {
		errs.Add("text", "text is required")
	}
	if f.GroupID != nil {
		ok, err := groupExists(*f.GroupID)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			errs.Add("group", "unknown group")
		}
	}
	if errs.Any() {
		return nil, errs, nil
	}
	return &models.Post{
		Text:    f.Text,
		GroupID: f.GroupID,
		Image:   f.Image,
	}, nil, nil
}

// CommentForm is the add-comment submission.
type CommentForm struct {
	Text string `json:"text" form:"text"`
}

// Validate returns a Comment draft with post and author unset.
func (f *CommentForm) Validate() (*models.Comment, Errors) {
	errs := Errors{}
	if strings.TrimSpace(f.Text) == "" {
		errs.Add("text", "text is required")
	}
	if errs.Any() {
		return nil, errs
	}
	return &models.Comment{Text: f.Text}, nil
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// GroupForm is the admin group-creation submission.
type GroupForm struct {
	Title       string `json:"title" form:"title"`
	Slug        string `json:"slug" form:"slug"`
	Description string `json:"description" form:"description"`
}

// Validate checks the form, including slug format and uniqueness. A taken
// slug surfaces as a field error, not a conflict.
func (f *GroupForm) Validate(slugTaken SlugLookup) (*models.Group, Errors, error) {
	errs := Errors{}
	if strings.TrimSpace(f.Title) == "" {
		errs.Add("title", "title is required")
	}
	switch {
	case f.Slug == "":
		errs.Add("slug", "slug is required")
	case !slugPattern.MatchString(f.Slug):
		errs.Add("slug", "slug may only contain lowercase letters, digits and hyphens")
	default:
		taken, err := slugTaken(f.Slug)
		if err != nil {
			return nil, nil, err
		}
		if taken {
			errs.Add("slug", "a group with this slug already exists")
		}
	}
	if errs.Any() {
		return nil, errs, nil
	}
	return &models.Group{
		Title:       f.Title,
		Slug:        f.Slug,
		Description: f.Description,
	}, nil, nil
}
