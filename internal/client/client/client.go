package client

import (
	"context"

	"github.com/dmitrijs2005/boardkeeper/internal/client/models"
)

// Client is the board API as the rest of the client sees it.
type Client interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.TokenResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error)

	ListBoards(ctx context.Context, params models.PageParams) (*models.BoardPage, error)
	GetBoard(ctx context.Context, id int64) (*models.Board, error)
	CreateBoard(ctx context.Context, in models.BoardInput) (*models.Board, error)
	UpdateBoard(ctx context.Context, id int64, in models.BoardInput) (*models.Board, error)
	DeleteBoard(ctx context.Context, id int64) error
}
