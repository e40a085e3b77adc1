package bot

import "time"

// Commands the bot answers
const (
	CommandStart   = "start"
	CommandHelp    = "help"
	CommandPlanets = "planets"
	CommandPlanet  = "planet"
	CommandStatus  = "status"
)

// Update polling
const (
	UpdateTimeoutSeconds = 60
	CommandTimeout       = 10 * time.Second
)

// User-facing texts
const (
	MsgWelcome        = "Welcome to Space Miner! Click the button below to start your galactic exploration adventure."
	MsgNotReady       = "Welcome to Space Miner! The game is currently being set up. Please try again later."
	MsgLaunchButton   = "Launch Space Miner"
	MsgHelp           = "Commands:\n/start - open the game\n/planets - list planets\n/planet <name> - planet details\n/status - your current expedition"
	MsgNoPlanets      = "No planets are available yet."
	MsgPlanetUsage    = "Usage: /planet <name>"
	MsgPlanetNotFound = "No planet matches %q."
	MsgNotRegistered  = "You have not started playing yet. Use /start first."
	MsgNoExpedition   = "No active expedition. Balance: %d credits."
	MsgActiveFormat   = "Exploring %s: %s left. Balance: %d credits."
	MsgTimeUp         = "Exploring %s: time is up, return to your ship! Balance: %d credits."
	MsgUnknownCommand = "Unknown command. Try /help."
	MsgSomethingWrong = "Something went wrong. Please try again later."
)

// Log messages
const (
	LogMsgBotAuthorized   = "Telegram bot authorized"
	LogMsgBotStopping     = "Telegram bot stopping"
	LogMsgSendFailed      = "Failed to send Telegram message"
	LogMsgCommandFailed   = "Telegram command failed"
	LogMsgRegisterFailed  = "Failed to register Telegram user"
	LogMsgWebAppURLNotTLS = "WEBAPP_URL must be an HTTPS URL for Telegram web app buttons"
)
