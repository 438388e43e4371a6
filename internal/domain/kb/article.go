// Package kb exposes the read side of the knowledge base: the snapshot of
// published articles handed to the classifier on each triage run. Article
// CRUD and search scoring live elsewhere.
package kb

import (
	"context"
	"fmt"
	"time"
)

type Article struct {
	id        uint
	slug      string
	title     string
	body      string
	tags      []string
	published bool
	createdAt time.Time
	updatedAt time.Time
}

func ReconstructArticle(
	id uint,
	slug string,
	title string,
	body string,
	tags []string,
	published bool,
	createdAt, updatedAt time.Time,
) (*Article, error) {
	if id == 0 {
		return nil, fmt.Errorf("article ID cannot be zero")
	}
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if tags == nil {
		tags = []string{}
	}

	return &Article{
		id:        id,
		slug:      slug,
		title:     title,
		body:      body,
		tags:      tags,
		published: published,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (a *Article) ID() uint {
	return a.id
}

func (a *Article) Slug() string {
	return a.slug
}

func (a *Article) Title() string {
	return a.title
}

func (a *Article) Body() string {
	return a.body
}

func (a *Article) Tags() []string {
	out := make([]string, len(a.tags))
	copy(out, a.tags)
	return out
}

func (a *Article) Published() bool {
	return a.published
}

func (a *Article) CreatedAt() time.Time {
	return a.createdAt
}

func (a *Article) UpdatedAt() time.Time {
	return a.updatedAt
}

// Repository is the read-only port the triage orchestrator needs.
type Repository interface {
	ListPublished(ctx context.Context) ([]*Article, error)
}
