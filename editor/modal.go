package editor

// ModalType tags a modal request. The editor never renders dialogs itself;
// it issues requests to an external modal collaborator and reacts to the
// confirm/cancel callbacks.
type ModalType string

const (
	ModalAlert        ModalType = "alert"
	ModalConfirmation ModalType = "confirmation"
	ModalLinkLocation ModalType = "link-location"
	ModalLinkQuest    ModalType = "link-quest"
)

// ModalRequest describes one dialog. For link types, OnConfirm carries the
// chosen or newly created entity id; for alert/confirmation it is called
// with an empty string. OnCancel may be nil.
type ModalRequest struct {
	Type    ModalType
	Message string
	WorldID string

	OnConfirm func(entityID string)
	OnCancel  func()
}

// ModalService presents dialogs on behalf of the session.
type ModalService interface {
	Show(req ModalRequest)
}

// ModalFunc adapts a function to ModalService.
type ModalFunc func(req ModalRequest)

func (f ModalFunc) Show(req ModalRequest) { f(req) }
