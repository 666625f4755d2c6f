package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/MarianaSardo/todosAPI/internal/cache"
	dom "github.com/MarianaSardo/todosAPI/internal/domain"
	"github.com/MarianaSardo/todosAPI/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

var (
	ErrNotFound         = errors.New("todo not found")
	ErrPastDueDate      = errors.New("due_date must not be earlier than the current date")
	ErrInvalidPriority  = errors.New("priority must be High, Medium or Low")
	ErrEmptyTitle       = errors.New("title must not be blank")
	ErrEmptyDescription = errors.New("description must not be blank")
)

type TodoService struct {
	repo  repo.TodoRepo
	cache *cache.TodoCache
	sf    singleflight.Group
}

// NewTodoService creates a TodoService. If c is nil, caching is disabled.
func NewTodoService(r repo.TodoRepo, c *cache.TodoCache) *TodoService {
	return &TodoService{repo: r, cache: c}
}

func (s *TodoService) Create(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	t.ID = 0 // assigned by the store
	if err := s.validate(&t); err != nil {
		return dom.Todo{}, err
	}
	out, err := s.repo.Create(ctx, t)
	if err != nil {
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx, out.ID)
	return out, nil
}

func (s *TodoService) List(ctx context.Context) ([]dom.Todo, error) {
	if s.cache != nil {
		v, err, _ := s.sf.Do("list", func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.List(ctx)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetList(ctx, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Todo), nil
	}
	return s.repo.List(ctx)
}

func (s *TodoService) GetByID(ctx context.Context, id int64) (dom.Todo, error) {
	if s.cache != nil {
		v, err, _ := s.sf.Do("item:"+strconv.FormatInt(id, 10), func() (interface{}, error) {
			if t, err := s.cache.GetItem(ctx, id); err == nil && t != nil {
				return *t, nil
			}
			t, err := s.repo.GetByID(ctx, id)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetItem(ctx, t)
			return t, nil
		})
		if err != nil {
			return dom.Todo{}, mapNoRows(err)
		}
		return v.(dom.Todo), nil
	}
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dom.Todo{}, mapNoRows(err)
	}
	return t, nil
}

// Update replaces every mutable field of the todo with id in one call.
// Existence is resolved before the write rules, so an absent id is always
// not-found even when the body is invalid too.
func (s *TodoService) Update(ctx context.Context, id int64, t dom.Todo) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return mapNoRows(err)
	}
	if err := s.validate(&t); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, id, t); err != nil {
		return mapNoRows(err)
	}
	s.invalidateCache(ctx, id)
	return nil
}

// SetCompleted updates only the completion flag, leaving every other field
// untouched.
func (s *TodoService) SetCompleted(ctx context.Context, id int64, completed bool) error {
	if err := s.repo.SetCompleted(ctx, id, completed); err != nil {
		return mapNoRows(err)
	}
	s.invalidateCache(ctx, id)
	return nil
}

func (s *TodoService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapNoRows(err)
	}
	s.invalidateCache(ctx, id)
	return nil
}

// validate normalizes the todo in place and enforces the write rules: title
// and description trimmed and non-blank, a known priority, and a due date
// (calendar portion) not earlier than today. Runs before any persistence
// mutation.
func (s *TodoService) validate(t *dom.Todo) error {
	t.Title = strings.TrimSpace(t.Title)
	t.Description = strings.TrimSpace(t.Description)
	if t.Title == "" {
		return ErrEmptyTitle
	}
	if t.Description == "" {
		return ErrEmptyDescription
	}
	if !t.Priority.Valid() {
		return ErrInvalidPriority
	}
	t.DueDate = startOfDay(t.DueDate)
	if t.DueDate.Before(startOfDay(time.Now().UTC())) {
		return ErrPastDueDate
	}
	return nil
}

func (s *TodoService) invalidateCache(ctx context.Context, id int64) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, id)
	}
}

func mapNoRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
