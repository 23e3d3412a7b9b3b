package domain

// EdgeActor кто имеет право инициировать переход по ребру
type EdgeActor int

const (
	// ActorWorker переход доступен только мастеру
	ActorWorker EdgeActor = iota
	// ActorCustomer переход доступен только клиенту
	ActorCustomer
	// ActorEither переход доступен любой из сторон бронирования
	ActorEither
)

// TransitionEdge разрешенное ребро (from, to) в графе статусов
type TransitionEdge struct {
	Actor EdgeActor

	// PaymentOnly помечает ребро, достижимое исключительно через операцию оплаты.
	// Общий механизм переходов обязан отклонять такие ребра независимо от актора,
	// чтобы правка таблицы не могла незаметно открыть обходной путь к COMPLETED
	PaymentOnly bool
}

// transitionTable явная таблица переходов: легальность ребра - это поиск по данным,
// а не договоренность в коде. Терминальные статусы не имеют исходящих ребер
var transitionTable = map[BookingStatus]map[BookingStatus]TransitionEdge{
	StatusPending: {
		StatusConfirmed: {Actor: ActorWorker},
		StatusRejected:  {Actor: ActorWorker},
		StatusCancelled: {Actor: ActorEither},
	},
	StatusConfirmed: {
		StatusOnTheWay:  {Actor: ActorWorker},
		StatusCancelled: {Actor: ActorEither},
	},
	StatusOnTheWay: {
		StatusInProgress: {Actor: ActorWorker},
		StatusCancelled:  {Actor: ActorEither},
	},
	StatusInProgress: {
		StatusWorkFinished: {Actor: ActorWorker},
		StatusCancelled:    {Actor: ActorEither},
	},
	StatusWorkFinished: {
		StatusCompleted: {Actor: ActorCustomer, PaymentOnly: true},
		StatusCancelled: {Actor: ActorEither},
	},
	// StatusCompleted, StatusCancelled, StatusRejected - терминальные
}

// FindEdge возвращает ребро (from, to), если оно существует в таблице переходов
func FindEdge(from, to BookingStatus) (TransitionEdge, bool) {
	targets, ok := transitionTable[from]
	if !ok {
		return TransitionEdge{}, false
	}
	edge, ok := targets[to]
	return edge, ok
}

// ActorAllowed проверяет, что пользователь имеет роль, требуемую ребром
func (e TransitionEdge) ActorAllowed(b *Booking, userID int64) bool {
	switch e.Actor {
	case ActorWorker:
		return b.WorkerID == userID
	case ActorCustomer:
		return b.CustomerID == userID
	case ActorEither:
		return b.IsParty(userID)
	default:
		return false
	}
}
