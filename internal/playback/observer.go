package playback

// Observer receives the signals a Controller emits. Signals are delivered
// after the controller has released its lock, so observers may call back into
// the controller.
type Observer interface {
	// Evolving reports whether a step or an auto-play run is in progress.
	Evolving(on bool)
	// LiveCells reports whether any cell is alive after a mutation.
	LiveCells(alive bool)
	// Notify carries a user-facing message, such as EndedMessage.
	Notify(message string)
}

// ObserverFuncs adapts plain functions to the Observer interface. Nil fields
// are skipped.
type ObserverFuncs struct {
	OnEvolving  func(on bool)
	OnLiveCells func(alive bool)
	OnNotify    func(message string)
}

func (f ObserverFuncs) Evolving(on bool) {
	if f.OnEvolving != nil {
		f.OnEvolving(on)
	}
}

func (f ObserverFuncs) LiveCells(alive bool) {
	if f.OnLiveCells != nil {
		f.OnLiveCells(alive)
	}
}

func (f ObserverFuncs) Notify(message string) {
	if f.OnNotify != nil {
		f.OnNotify(message)
	}
}

type signalKind int

const (
	signalEvolving signalKind = iota
	signalLiveCells
	signalNotify
)

type signal struct {
	kind signalKind
	flag bool
	msg  string
}

type signals []signal

func (s *signals) evolving(on bool) { *s = append(*s, signal{kind: signalEvolving, flag: on}) }
func (s *signals) liveCells(alive bool) { *s = append(*s, signal{kind: signalLiveCells, flag: alive}) }
func (s *signals) notify(msg string) { *s = append(*s, signal{kind: signalNotify, msg: msg}) }

func (s signals) deliver(observers []Observer) {
	for _, sig := range s {
		for _, o := range observers {
			switch sig.kind {
			case signalEvolving:
				o.Evolving(sig.flag)
			case signalLiveCells:
				o.LiveCells(sig.flag)
			case signalNotify:
				o.Notify(sig.msg)
			}
		}
	}
}
