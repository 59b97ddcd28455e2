package mcp

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/neondominance/internal/game"
	neonnet "github.com/peterkuimelis/neondominance/internal/net"
)

// RegisterTools adds all game tools to the MCP server. The caller plays the
// Runner; the Corporation is the built-in AI.
func RegisterTools(s *server.MCPServer, t *Tools) {
	s.AddTool(startGameTool(), t.handleStartGame)
	s.AddTool(drawTool(), t.handleDraw)
	s.AddTool(installTool(), t.handleInstall)
	s.AddTool(discardTool(), t.handleDiscard)
	s.AddTool(gainCreditTool(), t.handleGainCredit)
	s.AddTool(runTool(), t.handleRun)
	s.AddTool(continueRunTool(), t.handleContinueRun)
	s.AddTool(jackOutTool(), t.handleJackOut)
	s.AddTool(endTurnTool(), t.handleEndTurn)
	s.AddTool(getGameStateTool(), t.handleGetGameState)
	s.AddTool(commandTool(), t.handleCommand)
}

// --- Tool definitions ---

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Start a new Neon Dominance game as the Runner against the Corporation AI. "+
			"Replaces any game in progress. Returns the opening state and hand."),
		mcp.WithNumber("seed", mcp.Description("Random seed; the same seed and decks replay the same game")),
		mcp.WithNumber("runner_deck", mcp.Description("Runner deck number (1-indexed from decks.yaml)")),
		mcp.WithNumber("corp_deck", mcp.Description("Corporation deck number (1-indexed from decks.yaml)")),
	)
}

func drawTool() mcp.Tool {
	return mcp.NewTool("draw",
		mcp.WithDescription("Spend a click to draw one card."),
	)
}

func installTool() mcp.Tool {
	return mcp.NewTool("install",
		mcp.WithDescription("Spend a click to install a program, hardware or resource from hand, or play an event."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based hand index")),
	)
}

func discardTool() mcp.Tool {
	return mcp.NewTool("discard",
		mcp.WithDescription("Spend a click to discard a card from hand."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based hand index")),
	)
}

func gainCreditTool() mcp.Tool {
	return mcp.NewTool("gain_credit",
		mcp.WithDescription("Spend a click to gain one credit."),
	)
}

func runTool() mcp.Tool {
	return mcp.NewTool("run",
		mcp.WithDescription("Spend a click to start a run on a Corporation server. The run stops before each ICE; "+
			"use continue_run, or jack_out to abort."),
		mcp.WithString("server", mcp.Required(), mcp.Description("R&D, HQ, Archives, Remote1, Remote2 or Remote3")),
		mcp.WithString("approach", mcp.Description("Optional approach"),
			mcp.Enum("standard", "stealth", "aggressive", "careful")),
	)
}

func continueRunTool() mcp.Tool {
	return mcp.NewTool("continue_run",
		mcp.WithDescription("Resolve the next ICE of the current run. With all=true, continue until the run ends."),
		mcp.WithString("run_id", mcp.Description("Run ID; defaults to the current run")),
		mcp.WithBoolean("all", mcp.Description("Resolve the whole run")),
	)
}

func jackOutTool() mcp.Tool {
	return mcp.NewTool("jack_out",
		mcp.WithDescription("Abort the current run, paying the jack-out cost."),
		mcp.WithString("run_id", mcp.Description("Run ID; defaults to the current run")),
	)
}

func endTurnTool() mcp.Tool {
	return mcp.NewTool("end_turn",
		mcp.WithDescription("End the Runner's turn. The Corporation's turn is played immediately and its events returned."),
	)
}

func getGameStateTool() mcp.Tool {
	return mcp.NewTool("get_game_state",
		mcp.WithDescription("Get the current status, hand, servers and events since the last call. Read-only."),
	)
}

func commandTool() mcp.Tool {
	return mcp.NewTool("command",
		mcp.WithDescription("Run one line of the text command language (as in neon-cli), e.g. 'run hq --stealth'."),
		mcp.WithString("line", mcp.Required(), mcp.Description("Command line; 'help' lists commands")),
	)
}

// --- Tool handlers ---

func noGame() *mcp.CallToolResult {
	return mcp.NewToolResultError("No game is running. Use start_game first.")
}

// gameError reports a rejected command with its stable kind; the game is
// unchanged.
func gameError(err error) *mcp.CallToolResult {
	return mcp.NewToolResultErrorf("%s: %v", game.ErrorKind(err), err)
}

func (t *Tools) handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	seed := request.GetInt("seed", 0)
	runnerDeck := request.GetInt("runner_deck", 0)
	corpDeck := request.GetInt("corp_deck", 0)
	if runnerDeck < 0 || corpDeck < 0 {
		return mcp.NewToolResultError("deck numbers must be >= 1"), nil
	}
	if err := t.start(int64(seed), runnerDeck, corpDeck); err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}
	info := t.sess.Info()
	return mcp.NewToolResultText(respondJSON(t.respond(&ToolResponse{
		Info: &info,
		Hand: t.sess.Hand(game.SideRunner),
	}))), nil
}

func (t *Tools) handleDraw(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sess == nil {
		return noGame(), nil
	}
	card, err := t.sess.Draw(game.SideRunner)
	if err != nil {
		return gameError(err), nil
	}
	v := game.ViewCard(card)
	return mcp.NewToolResultText(respondJSON(t.respond(&ToolResponse{Card: &v}))), nil
}

func (t *Tools) handleInstall(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sess == nil {
		return noGame(), nil
	}
	card, err := t.sess.Install(game.SideRunner, request.GetInt("index", -1))
	if err != nil {
		return gameError(err), nil
	}
	v := game.ViewCard(card)
	return mcp.NewToolResultText(respondJSON(t.respond(&ToolResponse{
		Card: &v,
		Hand: t.sess.Hand(game.SideRunner),
	}))), nil
}

func (t *Tools) handleDiscard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sess == nil {
		return noGame(), nil
	}
	card, err := t.sess.Discard(game.SideRunner, request.GetInt("index", -1))
	if err != nil {
		return gameError(err), nil
	}
	v := game.ViewCard(card)
	return mcp.NewToolResultText(respondJSON(t.respond(&ToolResponse{Card: &v}))), nil
}

func (t *Tools) handleGainCredit(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sess == nil {
		return noGame(), nil
	}
	if _, err := t.sess.GainCredit(game.SideRunner); err != nil {
		return gameError(err), nil
	}
	return mcp.NewToolResultText(respondJSON(t.respond(&ToolResponse{}))), nil
}

func (t *Tools) handleRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sess == nil {
		return noGame(), nil
	}
	approach, err := game.ParseApproach(request.GetString("approach", ""))
	if err != nil {
		return gameError(err), nil
	}
	rs, err := t.sess.Run(game.SideRunner, request.GetString("server", ""), approach)
	if err != nil {
		return gameError(err), nil
	}
	return mcp.NewToolResultText(respondJSON(t.respond(&ToolResponse{Run: &rs}))), nil
}

func (t *Tools) handleContinueRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sess == nil {
		return noGame(), nil
	}
	id := request.GetString("run_id", "")
	step := t.sess.ContinueRun
	if request.GetBool("all", false) {
		step = t.sess.ResolveRun
	}
	rs, err := step(id)
	if err != nil {
		return gameError(err), nil
	}
	return mcp.NewToolResultText(respondJSON(t.respond(&ToolResponse{Run: &rs}))), nil
}

func (t *Tools) handleJackOut(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sess == nil {
		return noGame(), nil
	}
	rs, err := t.sess.JackOut(request.GetString("run_id", ""))
	if err != nil {
		return gameError(err), nil
	}
	return mcp.NewToolResultText(respondJSON(t.respond(&ToolResponse{Run: &rs}))), nil
}

func (t *Tools) handleEndTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sess == nil {
		return noGame(), nil
	}
	if _, err := t.sess.EndTurn(game.SideRunner); err != nil {
		return gameError(err), nil
	}
	return mcp.NewToolResultText(respondJSON(t.respond(&ToolResponse{
		Hand:    t.sess.Hand(game.SideRunner),
		Servers: t.sess.Servers(),
	}))), nil
}

func (t *Tools) handleGetGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sess == nil {
		return noGame(), nil
	}
	resp := &ToolResponse{
		Hand:    t.sess.Hand(game.SideRunner),
		Servers: t.sess.Servers(),
	}
	if rs, ok := t.sess.CurrentRun(); ok && !rs.Terminal {
		resp.Run = &rs
	}
	return mcp.NewToolResultText(respondJSON(t.respond(resp))), nil
}

func (t *Tools) handleCommand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sess == nil {
		return noGame(), nil
	}
	line := strings.TrimSpace(request.GetString("line", ""))
	out, err := neonnet.Execute(t.sess, line)
	if err != nil {
		return gameError(err), nil
	}
	return mcp.NewToolResultText(respondJSON(t.respond(&ToolResponse{Output: out}))), nil
}
