package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/boardkeeper/internal/client/models"
	"github.com/dmitrijs2005/boardkeeper/internal/client/routes"
)

// Boards prints one page of the board list with a page-number window.
func (a *App) Boards(ctx context.Context, page int) error {
	return a.protect(ctx, routes.Boards, func(ctx context.Context) error {
		p, err := a.boardService.List(ctx, models.PageParams{Page: page})
		if err != nil {
			return err
		}
		printFn(formatBoardPage(p))
		return nil
	})
}

// Show prints one board post.
func (a *App) Show(ctx context.Context, id int64) error {
	return a.protect(ctx, routes.BoardDetail(id), func(ctx context.Context) error {
		b, err := a.boardService.Get(ctx, id)
		if err != nil {
			return err
		}
		printFn(formatBoard(b))
		return nil
	})
}

// New prompts for a title and content and publishes a post.
func (a *App) New(ctx context.Context) error {
	return a.protect(ctx, routes.BoardCreate, func(ctx context.Context) error {
		title, err := getSimpleText(a.reader, "Title", os.Stdout)
		if err != nil {
			return err
		}
		content, err := GetMultiline(a.reader, "Content", os.Stdout)
		if err != nil {
			return err
		}

		b, err := a.boardService.Create(ctx, models.BoardInput{Title: title, Content: content})
		if err != nil {
			return err
		}
		printlnFn(fmt.Sprintf("Created board #%d.", b.BID))
		return nil
	})
}

// Edit rewrites a post of the current user. Empty answers keep the current
// title or content.
func (a *App) Edit(ctx context.Context, id int64) error {
	return a.protect(ctx, routes.BoardEdit(id), func(ctx context.Context) error {
		current, err := a.boardService.Get(ctx, id)
		if err != nil {
			return err
		}
		if !a.ownsBoard(current) {
			printlnFn("You can only edit your own posts.")
			return nil
		}

		title, err := GetTextWithDefault(a.reader, "Title", current.Title, os.Stdout)
		if err != nil {
			return err
		}
		content, err := GetMultiline(a.reader, "Content (empty keeps the current text)", os.Stdout)
		if err != nil {
			return err
		}
		if content == "" {
			content = current.Content
		}

		b, err := a.boardService.Update(ctx, id, models.BoardInput{Title: title, Content: content})
		if err != nil {
			return err
		}
		printlnFn(fmt.Sprintf("Updated board #%d.", b.BID))
		return nil
	})
}

// Delete removes a post of the current user after a confirmation.
func (a *App) Delete(ctx context.Context, id int64) error {
	return a.protect(ctx, routes.BoardDetail(id), func(ctx context.Context) error {
		current, err := a.boardService.Get(ctx, id)
		if err != nil {
			return err
		}
		if !a.ownsBoard(current) {
			printlnFn("You can only delete your own posts.")
			return nil
		}

		ok, err := confirmFn(a.reader, fmt.Sprintf("Delete board #%d %q?", id, current.Title), os.Stdout)
		if err != nil || !ok {
			return err
		}

		if err := a.boardService.Delete(ctx, id); err != nil {
			return err
		}
		printlnFn(fmt.Sprintf("Deleted board #%d.", id))
		return nil
	})
}

// confirmFn is a test seam for Confirm.
var confirmFn = Confirm

func (a *App) ownsBoard(b *models.Board) bool {
	u := a.session.Snapshot().CurrentUser
	return u != nil && b.Author != nil && strings.EqualFold(u.Email, b.Author.Email)
}

func formatBoardPage(p *models.BoardPage) string {
	if len(p.Content) == 0 {
		return "No posts yet.\n"
	}

	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tCREATED")
	for _, board := range p.Content {
		author := "-"
		if board.Author != nil {
			author = board.Author.Nickname
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", board.BID, board.Title, author, board.CreatedAt)
	}
	_ = tw.Flush()

	current := p.Current()
	pages := make([]string, 0, pagesPerBlock)
	for _, n := range PageWindow(current, p.Page.TotalPages) {
		if n == current {
			pages = append(pages, "["+strconv.Itoa(n)+"]")
		} else {
			pages = append(pages, strconv.Itoa(n))
		}
	}
	fmt.Fprintf(&b, "Pages: %s  (page %d of %d, %d posts)\n",
		strings.Join(pages, " "), current, p.Page.TotalPages, p.Page.TotalElements)
	return b.String()
}

func formatBoard(board *models.Board) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s\n", board.BID, board.Title)
	if board.Author != nil {
		fmt.Fprintf(&b, "by %s <%s>\n", board.Author.Nickname, board.Author.Email)
	}
	fmt.Fprintf(&b, "created %s, updated %s\n\n", board.CreatedAt, board.UpdatedAt)
	b.WriteString(board.Content)
	b.WriteString("\n")
	return b.String()
}
