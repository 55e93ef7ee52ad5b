package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/boardkeeper/internal/client/client"
	"github.com/dmitrijs2005/boardkeeper/internal/client/models"
	"github.com/dmitrijs2005/boardkeeper/internal/common"
)

// BoardService lists, reads and edits board posts. Input is validated
// before it reaches the server.
type BoardService interface {
	List(ctx context.Context, params models.PageParams) (*models.BoardPage, error)
	Get(ctx context.Context, id int64) (*models.Board, error)
	Create(ctx context.Context, in models.BoardInput) (*models.Board, error)
	Update(ctx context.Context, id int64, in models.BoardInput) (*models.Board, error)
	Delete(ctx context.Context, id int64) error
}

type boardService struct {
	client client.Client
}

func NewBoardService(api client.Client) BoardService {
	return &boardService{client: api}
}

func (b *boardService) List(ctx context.Context, params models.PageParams) (*models.BoardPage, error) {
	page, err := b.client.ListBoards(ctx, params.WithDefaults())
	if err != nil {
		return nil, fmt.Errorf("list boards error: %w", err)
	}
	return page, nil
}

func (b *boardService) Get(ctx context.Context, id int64) (*models.Board, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	board, err := b.client.GetBoard(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get board error: %w", err)
	}
	return board, nil
}

func (b *boardService) Create(ctx context.Context, in models.BoardInput) (*models.Board, error) {
	in, err := validateInput(in)
	if err != nil {
		return nil, err
	}
	board, err := b.client.CreateBoard(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create board error: %w", err)
	}
	return board, nil
}

func (b *boardService) Update(ctx context.Context, id int64, in models.BoardInput) (*models.Board, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	in, err := validateInput(in)
	if err != nil {
		return nil, err
	}
	board, err := b.client.UpdateBoard(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("update board error: %w", err)
	}
	return board, nil
}

func (b *boardService) Delete(ctx context.Context, id int64) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := b.client.DeleteBoard(ctx, id); err != nil {
		return fmt.Errorf("delete board error: %w", err)
	}
	return nil
}

func validateID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: board id must be positive", common.ErrValidation)
	}
	return nil
}

func validateInput(in models.BoardInput) (models.BoardInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return in, fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	if strings.TrimSpace(in.Content) == "" {
		return in, fmt.Errorf("%w: content is required", common.ErrValidation)
	}
	return in, nil
}
