package telegram

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"essay-feedback/api/internal/essay"
	"essay-feedback/api/internal/essay/types"
)

// Bot is the subset of *tgbotapi.BotAPI used here.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error)
}

type Evaluator interface {
	Evaluate(ctx context.Context, req types.FeedbackRequest) (types.Document, error)
}

var textTypes = map[string]bool{
	"narrative":    true,
	"persuasive":   true,
	"descriptive":  true,
	"expository":   true,
	"recount":      true,
	"discursive":   true,
	"reflective":   true,
	"informative":  true,
	"diary entry":  true,
	"advice sheet": true,
}

const helpText = `Send me your essay as a text message and I will mark it against the NSW Selective writing criteria.

Commands:
/type <text type> : set the text type (narrative, persuasive, descriptive, ...)
/engine <gpt|gemini> : choose the marking model
/help : this message`

type Router struct {
	Bot     Bot
	Eval    Evaluator
	Log     *zap.Logger
	Timeout time.Duration

	prefs prefStore
}

func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	msg := upd.Message
	cid := msg.Chat.ID

	if msg.IsCommand() {
		r.handleCommand(cid, msg.Command(), strings.TrimSpace(msg.CommandArguments()))
		return
	}
	if strings.TrimSpace(msg.Text) == "" {
		r.send(cid, "Please send the essay as plain text.")
		return
	}
	r.evaluate(ctx, cid, msg.Text)
}

func (r *Router) handleCommand(cid int64, cmd, args string) {
	switch cmd {
	case "start", "help":
		r.send(cid, helpText)
	case "type":
		tt := strings.ToLower(args)
		if tt == "" {
			cur := r.prefs.get(cid).TextType
			if cur == "" {
				cur = "narrative"
			}
			r.send(cid, "Current text type: "+cur+"\nAvailable: "+strings.Join(sortedTextTypes(), ", "))
			return
		}
		if !textTypes[tt] {
			r.send(cid, "Unknown text type. Available: "+strings.Join(sortedTextTypes(), ", "))
			return
		}
		r.prefs.update(cid, func(p *chatPrefs) { p.TextType = tt })
		r.send(cid, "✅ Text type: "+tt)
	case "engine":
		name := strings.ToLower(args)
		switch name {
		case "":
			cur := r.prefs.get(cid).Engine
			if cur == "" {
				cur = "default"
			}
			r.send(cid, "Current engine: "+cur+"\nUsage: /engine gpt | /engine gemini")
		case "gpt", "openai", "gemini":
			r.prefs.update(cid, func(p *chatPrefs) { p.Engine = name })
			r.send(cid, "✅ Engine: "+name)
		default:
			r.send(cid, "Unknown engine. Available: gpt | gemini")
		}
	default:
		r.send(cid, "Unknown command. Try /help")
	}
}

func (r *Router) evaluate(ctx context.Context, cid int64, text string) {
	p := r.prefs.get(cid)
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	r.send(cid, "⏳ Marking your essay…")
	doc, err := r.Eval.Evaluate(ctx, types.FeedbackRequest{
		Content:  text,
		TextType: p.TextType,
		LLMName:  p.Engine,
	})
	if err != nil {
		r.Log.Warn("telegram evaluation failed", zap.Int64("chat_id", cid), zap.Error(err))
		if errors.Is(err, essay.ErrEngineNotConfigured) || errors.Is(err, essay.ErrUnknownEngine) {
			r.send(cid, "❌ That engine is not available. Choose another with /engine.")
			return
		}
		r.send(cid, fmt.Sprintf("❌ Could not mark the essay: %v", err))
		return
	}
	r.send(cid, Summary(doc))
}

func (r *Router) send(chatID int64, text string) {
	if _, err := r.Bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		r.Log.Warn("telegram send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func sortedTextTypes() []string {
	out := make([]string, 0, len(textTypes))
	for k := range textTypes {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
