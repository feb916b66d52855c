package websocket

import (
	"context"
	"fmt"
)

func (that *Server) handleNewGame(ctx context.Context, c *client, _ *RequestPayload) error {
	game, err := that.uGame.NewGame(ctx)
	if err != nil {
		_ = c.send(actionNew, ResponsePayload{Error: "failed to create a new game"})
		return fmt.Errorf("failed to create game: %w", err)
	}

	that.subscribe(game.ID, c)

	return c.send(actionNew, ResponsePayload{Game: game})
}

func (that *Server) handleJoinGame(ctx context.Context, c *client, payload *RequestPayload) error {
	if payload.GameID == "" {
		return c.send(actionJoin, ResponsePayload{Error: "game_id is required"})
	}

	game, err := that.uGame.GetGame(ctx, payload.GameID)
	if err != nil {
		return c.send(actionJoin, ResponsePayload{Error: err.Error()})
	}

	that.subscribe(game.ID, c)

	return c.send(actionJoin, ResponsePayload{Game: game})
}

func (that *Server) handleMove(ctx context.Context, c *client, payload *RequestPayload) error {
	if payload.GameID == "" || payload.Row == nil || payload.Col == nil {
		return c.send(actionMove, ResponsePayload{Error: "game_id, row and col are required"})
	}

	game, err := that.uGame.MakeMove(ctx, payload.GameID, *payload.Row, *payload.Col)
	if err != nil {
		return c.send(actionMove, ResponsePayload{Game: game, Error: err.Error()})
	}

	that.subscribe(game.ID, c)
	that.broadcast(actionMove, game)

	return nil
}

func (that *Server) handleRestart(ctx context.Context, c *client, payload *RequestPayload) error {
	if payload.GameID == "" {
		return c.send(actionRestart, ResponsePayload{Error: "game_id is required"})
	}

	game, err := that.uGame.Restart(ctx, payload.GameID)
	if err != nil {
		return c.send(actionRestart, ResponsePayload{Error: err.Error()})
	}

	that.subscribe(game.ID, c)
	that.broadcast(actionRestart, game)

	return nil
}

func (that *Server) handleCell(ctx context.Context, c *client, payload *RequestPayload) error {
	if payload.GameID == "" || payload.Row == nil || payload.Col == nil {
		return c.send(actionCell, ResponsePayload{Error: "game_id, row and col are required"})
	}

	mark, err := that.uGame.QueryCell(ctx, payload.GameID, *payload.Row, *payload.Col)
	if err != nil {
		return c.send(actionCell, ResponsePayload{Error: err.Error()})
	}

	return c.send(actionCell, ResponsePayload{Cell: &CellPayload{Row: *payload.Row, Col: *payload.Col, Mark: mark}})
}

func (that *Server) handleLeave(_ context.Context, c *client, payload *RequestPayload) error {
	that.unsubscribe(payload.GameID, c)

	return c.send(actionLeave, ResponsePayload{})
}
