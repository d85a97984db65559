package common

// Callback data. Префиксы с ":" несут id или номер страницы.
const (
	CallbackNoop       = "noop"
	CallbackBackToMain = "back_to_main"

	CallbackRequestsPage        = "req_page:"
	CallbackRequestView         = "req_view:"
	CallbackRequestApprove      = "req_approve:"
	CallbackRequestApproveNoMsg = "req_approve_nomsg"
	CallbackRequestReject       = "req_reject:"
	CallbackRequestRejectNoMsg  = "req_reject_nomsg"
	CallbackRequestDelete       = "req_delete:"

	CallbackClassesList         = "classes_list"
	CallbackClassView           = "class_view:"
	CallbackClassDelete         = "class_delete:"
	CallbackClassDeleteConfirm  = "class_delete_confirm:"
	CallbackClassGenerate       = "class_generate:"
	CallbackNewClassStart       = "newclass_start"
	CallbackNewClassDay         = "newclass_day:"
	CallbackNewClassOnlineYes   = "newclass_online:yes"
	CallbackNewClassOnlineNo    = "newclass_online:no"
	CallbackNewClassGenerateYes = "newclass_generate:yes"
	CallbackNewClassGenerateNo  = "newclass_generate:no"

	CallbackSessionCancel        = "session_cancel:"
	CallbackSessionCancelConfirm = "session_cancel_confirm:"
)

// RequestsPerPage запросов на одной странице списка
const RequestsPerPage = 5
