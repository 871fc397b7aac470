package workflow

import (
	"slices"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrUnknownStatus      = errors.New("неизвестный статус")
	ErrIllegalTransition  = errors.New("недопустимый переход статуса")
	ErrSameStatus         = errors.New("заявка уже находится в этом статусе")
	ErrEditNotAllowed     = errors.New("редактирование доступно только для заявок на рассмотрении")
	ErrTerminalTransition = errors.New("заявка в конечном статусе")
	ErrStatusChanged      = errors.New("статус заявки изменен другим пользователем")
)

// Machine таблица переходов статусов заявки
type Machine[S ~string] struct {
	initial     S
	editable    S
	order       []S
	transitions map[S][]S
	remarks     map[S]string
}

type Option[S ~string] func(m *Machine[S])

// WithRemark текст примечания по умолчанию для перехода в статус
func WithRemark[S ~string](status S, remark string) Option[S] {
	return func(m *Machine[S]) {
		m.remarks[status] = remark
	}
}

// WithEditable статус, в котором запись можно редактировать. По умолчанию - начальный
func WithEditable[S ~string](status S) Option[S] {
	return func(m *Machine[S]) {
		m.editable = status
	}
}

// New order задает все статусы машины, первый из них начальный
func New[S ~string](order []S, transitions map[S][]S, opts ...Option[S]) *Machine[S] {
	if len(order) == 0 {
		panic("workflow: пустой список статусов")
	}
	m := &Machine[S]{
		initial:     order[0],
		editable:    order[0],
		order:       slices.Clone(order),
		transitions: make(map[S][]S, len(transitions)),
		remarks:     map[S]string{},
	}
	for from, to := range transitions {
		if !slices.Contains(order, from) {
			panic("workflow: статус " + string(from) + " отсутствует в списке")
		}
		for _, s := range to {
			if !slices.Contains(order, s) {
				panic("workflow: статус " + string(s) + " отсутствует в списке")
			}
		}
		m.transitions[from] = slices.Clone(to)
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Machine[S]) Initial() S {
	return m.initial
}

// Statuses все статусы в порядке объявления
func (m *Machine[S]) Statuses() []S {
	return slices.Clone(m.order)
}

func (m *Machine[S]) IsKnown(s S) bool {
	return slices.Contains(m.order, s)
}

// Next допустимые статусы перехода из from
func (m *Machine[S]) Next(from S) []S {
	return slices.Clone(m.transitions[from])
}

func (m *Machine[S]) CanTransition(from, to S) bool {
	return slices.Contains(m.transitions[from], to)
}

func (m *Machine[S]) IsTerminal(s S) bool {
	return m.IsKnown(s) && len(m.transitions[s]) == 0
}

func (m *Machine[S]) CanEdit(s S) bool {
	return s == m.editable
}

// CanDelete удаление разрешено в любом статусе
func (m *Machine[S]) CanDelete(S) bool {
	return true
}

// CanChangeStatus есть хотя бы один допустимый переход
func (m *Machine[S]) CanChangeStatus(s S) bool {
	return len(m.transitions[s]) > 0
}

// ResolveRemark пустое примечание заменяется текстом по умолчанию
func (m *Machine[S]) ResolveRemark(to S, remark string) string {
	remark = strings.TrimSpace(remark)
	if remark != "" {
		return remark
	}
	if def, ok := m.remarks[to]; ok {
		return def
	}
	return string(to)
}

func (m *Machine[S]) Validate(from, to S) error {
	if !m.IsKnown(to) || !m.IsKnown(from) {
		return errors.Wrapf(ErrUnknownStatus, "%s -> %s", from, to)
	}
	if from == to {
		return ErrSameStatus
	}
	if m.IsTerminal(from) {
		return errors.Wrapf(ErrTerminalTransition, "%s", from)
	}
	if !m.CanTransition(from, to) {
		return errors.Wrapf(ErrIllegalTransition, "%s -> %s", from, to)
	}
	return nil
}

// ValidateEdit проверка перед изменением полей записи
func (m *Machine[S]) ValidateEdit(s S) error {
	if !m.CanEdit(s) {
		return ErrEditNotAllowed
	}
	return nil
}
