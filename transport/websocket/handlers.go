package websocket

import (
	"context"
	"encoding/json"

	"github.com/gorilla/websocket"
)

func (that *Server) decodePayload(conn *websocket.Conn, msg *Message) (*Payload, bool, error) {
	var payload Payload
	if len(msg.Payload) == 0 {
		return &payload, true, nil
	}

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		that.logger.Error("failed to unmarshal payload", "action", msg.Action, "error", err)

		errMsg := "malformed payload"
		if isClientError(err) {
			errMsg = err.Error()
		}
		return nil, false, that.sendErrorResponse(conn, msg.Action, errMsg)
	}

	return &payload, true, nil
}

func (that *Server) handleNewGame(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleNewGame")

	payload, ok, err := that.decodePayload(conn, msg)
	if !ok {
		return err
	}

	game, err := that.gameService.CreateGame(ctx, payload.Mark)
	if err != nil {
		log.Error("failed to create game", "error", err)
		return that.sendErrorResponse(conn, msg.Action, errorText(err))
	}

	return that.sendMessage(conn, msg.Action, Payload{Game: game})
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleGameTurn")

	payload, ok, err := that.decodePayload(conn, msg)
	if !ok {
		return err
	}

	if payload.GameID == "" || payload.Move == nil {
		return that.sendErrorResponse(conn, msg.Action, "game_id and move are required")
	}

	game, err := that.gameService.MakeTurn(ctx, payload.GameID, *payload.Move)
	if err != nil {
		log.Error("failed to make turn", "gameID", payload.GameID, "error", err)
		return that.sendErrorResponse(conn, msg.Action, errorText(err))
	}

	return that.sendMessage(conn, msg.Action, Payload{Game: game})
}

func (that *Server) handleGameState(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	payload, ok, err := that.decodePayload(conn, msg)
	if !ok {
		return err
	}

	if payload.GameID == "" {
		return that.sendErrorResponse(conn, msg.Action, "game_id is required")
	}

	game, err := that.gameService.GetGame(ctx, payload.GameID)
	if err != nil {
		that.logger.Error("failed to get game", "method", "handleGameState", "gameID", payload.GameID, "error", err)
		return that.sendErrorResponse(conn, msg.Action, errorText(err))
	}

	return that.sendMessage(conn, msg.Action, Payload{Game: game})
}

func (that *Server) handleBoardSolve(_ context.Context, msg *Message, conn *websocket.Conn) error {
	payload, ok, err := that.decodePayload(conn, msg)
	if !ok {
		return err
	}

	if payload.Board == nil {
		return that.sendErrorResponse(conn, msg.Action, "board is required")
	}

	analysis, err := that.solverService.Solve(*payload.Board)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, errorText(err))
	}

	return that.sendMessage(conn, msg.Action, Payload{Board: payload.Board, Solution: newSolution(analysis)})
}
