// internal/state/state.go
package state

import "github.com/hajimehoshi/ebiten/v2"

// State — экран приложения: справка, страница или пауза.
type State interface {
	Enter()
	Update(deltaTime float64)
	Draw(screen *ebiten.Image)
	Exit()
}

// Overlay — состояние, под которым виден предыдущий экран (пауза).
type Overlay interface {
	State
	IsOverlay() bool
}

// StateMachine держит стек состояний. SetState меняет экран целиком,
// Push кладёт поверх оверлей, не выходя из страницы, Pop его снимает.
type StateMachine struct {
	stack []State
}

// NewStateMachine создаёт пустую машину состояний.
func NewStateMachine() *StateMachine {
	return &StateMachine{}
}

// SetState выходит из всех состояний стека и входит в новое.
func (sm *StateMachine) SetState(newState State) {
	for len(sm.stack) > 0 {
		sm.pop()
	}
	if newState != nil {
		sm.stack = append(sm.stack, newState)
		newState.Enter()
	}
}

// Push кладёт состояние поверх текущего. Текущее не получает Exit:
// его подписки живут, пока оверлей открыт.
func (sm *StateMachine) Push(s State) {
	sm.stack = append(sm.stack, s)
	s.Enter()
}

// Pop снимает верхнее состояние. Нижнее продолжает работу без Enter.
func (sm *StateMachine) Pop() {
	if len(sm.stack) > 1 {
		sm.pop()
	}
}

func (sm *StateMachine) pop() {
	top := sm.stack[len(sm.stack)-1]
	sm.stack = sm.stack[:len(sm.stack)-1]
	top.Exit()
}

// Current возвращает верхнее состояние.
func (sm *StateMachine) Current() State {
	if len(sm.stack) == 0 {
		return nil
	}
	return sm.stack[len(sm.stack)-1]
}

// Depth — число состояний в стеке.
func (sm *StateMachine) Depth() int {
	return len(sm.stack)
}

// Update обновляет только верхнее состояние: под паузой страница стоит.
func (sm *StateMachine) Update(deltaTime float64) {
	if cur := sm.Current(); cur != nil {
		cur.Update(deltaTime)
	}
}

// Draw рисует верхнее состояние и все оверлеи под ним вместе с первым
// непрозрачным.
func (sm *StateMachine) Draw(screen *ebiten.Image) {
	from := len(sm.stack) - 1
	for from > 0 {
		o, ok := sm.stack[from].(Overlay)
		if !ok || !o.IsOverlay() {
			break
		}
		from--
	}
	for i := max(from, 0); i < len(sm.stack); i++ {
		sm.stack[i].Draw(screen)
	}
}
