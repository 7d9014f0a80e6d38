package ports

// NameChangeEvent é o evento publicado após uma troca de nome confirmada
type NameChangeEvent struct {
	UserID     uint   `json:"userId"`
	BeforeName string `json:"beforeName"`
	AfterName  string `json:"afterName"`
}

// HistoryNotifier publica eventos de auditoria para consumidores
// interessados (ex: clientes websocket). Publicação é fire-and-forget:
// falha de entrega nunca afeta a transação já confirmada.
type HistoryNotifier interface {
	NotifyNameChange(event NameChangeEvent)
}
