package database

import (
	"time"
)

type RenderStore interface {
	GetRender(key string) (*Render, error)
	GetRenderCount() (int, error)

	SaveRender(render Render) error
	DeleteExpired(now time.Time) (int64, error)
}
