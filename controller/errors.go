package controller

import "errors"

var (
	ErrParseRequest = errors.New("failed to parse request")

	ErrUserRegister  = errors.New("failed to register user")
	ErrGenerateToken = errors.New("failed to generate token")
	ErrUserLogin     = errors.New("failed to login")

	ErrCreateSymposium = errors.New("failed to create a symposium")
	ErrGetSymposiums   = errors.New("failed to get symposiums")
	ErrUpdateSymposium = errors.New("failed to update symposium")
	ErrDeleteSymposium = errors.New("failed to delete a symposium")

	ErrCreateConsultant = errors.New("failed to create a consultant")
	ErrGetConsultants   = errors.New("failed to get consultants")
	ErrUpdateConsultant = errors.New("failed to update consultant")
	ErrDeleteConsultant = errors.New("failed to delete consultant")
	ErrGetTemplates     = errors.New("failed to get consultant templates")

	ErrGetMessages          = errors.New("failed to get symposium messages")
	ErrUpdateMessage        = errors.New("failed to update message")
	ErrDeleteMessage        = errors.New("failed to delete message")
	ErrSetMessageVisibility = errors.New("failed to set message visibility")

	ErrChatTurn = errors.New("error while processing chat turn")

	ErrCreateKnowledgeCard = errors.New("failed to create knowledge card")
	ErrGetKnowledgeCards   = errors.New("failed to get knowledge cards")
	ErrUpdateKnowledgeCard = errors.New("failed to update knowledge card")
	ErrDeleteKnowledgeCard = errors.New("failed to delete knowledge card")
	ErrSearchKnowledgeCard = errors.New("failed to search knowledge cards")
	ErrPinKnowledgeCard    = errors.New("failed to pin knowledge card")
	ErrUnpinKnowledgeCard  = errors.New("failed to unpin knowledge card")
	ErrImportMarkdown      = errors.New("failed to import markdown file")

	ErrGetAPICallLogs = errors.New("failed to get api call logs")
)
