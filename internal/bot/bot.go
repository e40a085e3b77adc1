package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/spaceminer/spaceminer-server/internal/domain"
	"github.com/spaceminer/spaceminer-server/internal/expedition"
)

// API is the part of *tgbotapi.BotAPI the bot uses
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// CatalogService is the catalog surface the bot reads
type CatalogService interface {
	ListPlanets(ctx context.Context) ([]domain.Planet, error)
	FindPlanets(ctx context.Context, query string) ([]domain.Planet, error)
	GetPlanetDetails(ctx context.Context, id int) (*domain.PlanetDetails, error)
}

// UserService registers players and reads their current balance
type UserService interface {
	Register(ctx context.Context, telegramID int64, username string) (*domain.User, error)
	GetProfile(ctx context.Context, telegramID int64) (*domain.Profile, error)
}

// ExpeditionService reports the active expedition of a user
type ExpeditionService interface {
	GetActive(ctx context.Context, userID string) (*domain.ActiveExpedition, error)
}

// Bot answers Telegram chat commands and hands players the web app button
type Bot struct {
	api         API
	catalog     CatalogService
	users       UserService
	expeditions ExpeditionService
	webAppURL   string
	printer     *message.Printer
}

// New creates a bot. webAppURL must be HTTPS for /start to offer the game button.
func New(api API, catalog CatalogService, users UserService, expeditions ExpeditionService, webAppURL string) *Bot {
	if !strings.HasPrefix(webAppURL, "https://") {
		slog.Warn(LogMsgWebAppURLNotTLS, "url", webAppURL)
	}
	return &Bot{
		api:         api,
		catalog:     catalog,
		users:       users,
		expeditions: expeditions,
		webAppURL:   webAppURL,
		printer:     message.NewPrinter(language.English),
	}
}

// Run polls for updates until ctx is cancelled
func (b *Bot) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = UpdateTimeoutSeconds
	updates := b.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			slog.Info(LogMsgBotStopping)
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate dispatches one update. Non-command messages are ignored.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || !msg.IsCommand() {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, CommandTimeout)
	defer cancel()

	chatID := msg.Chat.ID
	var (
		reply tgbotapi.MessageConfig
		err   error
	)
	switch msg.Command() {
	case CommandStart:
		reply = b.handleStart(ctx, msg)
	case CommandHelp:
		reply = tgbotapi.NewMessage(chatID, MsgHelp)
	case CommandPlanets:
		reply, err = b.handlePlanets(ctx, chatID)
	case CommandPlanet:
		reply, err = b.handlePlanet(ctx, chatID, msg.CommandArguments())
	case CommandStatus:
		reply, err = b.handleStatus(ctx, msg)
	default:
		reply = tgbotapi.NewMessage(chatID, MsgUnknownCommand)
	}
	if err != nil {
		slog.Error(LogMsgCommandFailed, "command", msg.Command(), "chat_id", chatID, "error", err)
		reply = tgbotapi.NewMessage(chatID, MsgSomethingWrong)
	}

	if _, err := b.api.Send(reply); err != nil {
		slog.Error(LogMsgSendFailed, "chat_id", chatID, "error", err)
	}
}

type webAppInfo struct {
	URL string `json:"url"`
}

type webAppButton struct {
	Text   string     `json:"text"`
	WebApp webAppInfo `json:"web_app"`
}

type webAppKeyboard struct {
	InlineKeyboard [][]webAppButton `json:"inline_keyboard"`
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) tgbotapi.MessageConfig {
	chatID := msg.Chat.ID

	// A failed registration still gets the button; the web app registers on load.
	if from := msg.From; from != nil {
		if _, err := b.users.Register(ctx, from.ID, from.UserName); err != nil {
			slog.Warn(LogMsgRegisterFailed, "telegram_id", from.ID, "error", err)
		}
	}

	if !strings.HasPrefix(b.webAppURL, "https://") {
		return tgbotapi.NewMessage(chatID, MsgNotReady)
	}

	reply := tgbotapi.NewMessage(chatID, MsgWelcome)
	reply.ReplyMarkup = webAppKeyboard{
		InlineKeyboard: [][]webAppButton{{
			{Text: MsgLaunchButton, WebApp: webAppInfo{URL: b.webAppURL}},
		}},
	}
	return reply
}

func (b *Bot) handlePlanets(ctx context.Context, chatID int64) (tgbotapi.MessageConfig, error) {
	planets, err := b.catalog.ListPlanets(ctx)
	if err != nil {
		return tgbotapi.MessageConfig{}, err
	}
	if len(planets) == 0 {
		return tgbotapi.NewMessage(chatID, MsgNoPlanets), nil
	}

	var sb strings.Builder
	for _, p := range planets {
		fmt.Fprintf(&sb, "%s - difficulty %d, danger %d, %ds\n", p.Name, p.Difficulty, p.DangerLevel, p.BaseTime)
	}
	return tgbotapi.NewMessage(chatID, strings.TrimRight(sb.String(), "\n")), nil
}

func (b *Bot) handlePlanet(ctx context.Context, chatID int64, query string) (tgbotapi.MessageConfig, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return tgbotapi.NewMessage(chatID, MsgPlanetUsage), nil
	}

	matches, err := b.catalog.FindPlanets(ctx, query)
	if err != nil {
		return tgbotapi.MessageConfig{}, err
	}
	if len(matches) == 0 {
		return tgbotapi.NewMessage(chatID, fmt.Sprintf(MsgPlanetNotFound, query)), nil
	}

	details, err := b.catalog.GetPlanetDetails(ctx, matches[0].ID)
	if err != nil {
		return tgbotapi.MessageConfig{}, err
	}
	return tgbotapi.NewMessage(chatID, formatPlanet(details)), nil
}

func formatPlanet(d *domain.PlanetDetails) string {
	p := d.Planet
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n%s\n", p.Name, p.Description)
	fmt.Fprintf(&sb, "Difficulty %d, danger level %d, time %ds, yield x%.2f\n", p.Difficulty, p.DangerLevel, p.BaseTime, p.ResourceMultiplier)

	if len(d.Resources) > 0 {
		sb.WriteString("\nResources:\n")
		for _, r := range d.Resources {
			fmt.Fprintf(&sb, "- %s (rarity %d, %.0f%%)\n", r.Resource.Name, r.Resource.Rarity, r.SpawnRate*100)
		}
	}

	sb.WriteString("\nDangers:\n")
	for _, c := range expedition.PlanetDangers(p) {
		fmt.Fprintf(&sb, "- %s %.0f%%\n", c.Name, c.Probability*100)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (b *Bot) handleStatus(ctx context.Context, msg *tgbotapi.Message) (tgbotapi.MessageConfig, error) {
	chatID := msg.Chat.ID
	if msg.From == nil {
		return tgbotapi.NewMessage(chatID, MsgNotRegistered), nil
	}

	profile, err := b.users.GetProfile(ctx, msg.From.ID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return tgbotapi.NewMessage(chatID, MsgNotRegistered), nil
	}
	if err != nil {
		return tgbotapi.MessageConfig{}, err
	}
	u := profile.User

	active, err := b.expeditions.GetActive(ctx, u.ID)
	if errors.Is(err, domain.ErrExpeditionNotFound) {
		return tgbotapi.NewMessage(chatID, b.printer.Sprintf(MsgNoExpedition, u.Currency)), nil
	}
	if err != nil {
		return tgbotapi.MessageConfig{}, err
	}

	if active.RemainingSeconds <= 0 {
		return tgbotapi.NewMessage(chatID, b.printer.Sprintf(MsgTimeUp, active.PlanetName, u.Currency)), nil
	}
	left := formatCountdown(time.Duration(active.RemainingSeconds) * time.Second)
	return tgbotapi.NewMessage(chatID, b.printer.Sprintf(MsgActiveFormat, active.PlanetName, left, u.Currency)), nil
}

// formatCountdown renders a duration as mm:ss
func formatCountdown(d time.Duration) string {
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
