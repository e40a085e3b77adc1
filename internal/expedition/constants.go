package expedition

// User-facing messages
const (
	MsgExpeditionStarted = "Expedition started successfully"
	MsgNothingMined      = "You didn't find any resources this time"
	MsgMinedFormat       = "You mined %d %s"
	MsgExploredFormat    = "You explored the area and found %d resources!"

	MsgReturnSuccessFormat   = "Expedition completed successfully! You collected resources worth %d currency."
	MsgReturnRecoveredFormat = "Expedition failed! You recovered %d%% of your resources worth %d currency."
	MsgReturnLost            = "Expedition failed! You lost all your resources."
	MsgTimeUpRecoveredFormat = "Expedition timed out! You recovered %d%% of your resources worth %d currency thanks to your insurance."
	MsgTimeUpLost            = "Expedition timed out! You lost all your resources."
)

// Log messages
const (
	LogMsgExpeditionStarted  = "Expedition started"
	LogMsgExpeditionSettled  = "Expedition settled"
	LogMsgLazyClose          = "Closing expired expedition before start"
	LogMsgResourceMined      = "Resource mined"
	LogMsgAreaExplored       = "Area explored"
	LogMsgDangerRolled       = "Danger event triggered"
	LogMsgPublishFailed      = "Failed to publish event"
	LogMsgSettlementRollback = "Settlement lost the race for the expedition row"
)
