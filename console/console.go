// Пакет console сериализует вывод программы: все строки
// проходят через канал и печатаются одной горутиной
package console

import (
	"fmt"
	"io"
	"sync"
)

const lineBuffer = 256

// Печать строк единственным потребителем
type Printer struct {
	w      io.Writer
	lines  chan string
	done   chan struct{}
	mu     sync.RWMutex
	closed bool
}

// Возвращает новый [Printer], пишущий в w
func NewPrinter(w io.Writer) *Printer {
	p := &Printer{
		w:     w,
		lines: make(chan string, lineBuffer),
		done:  make(chan struct{}),
	}

	go p.drain()

	return p
}

func (p *Printer) drain() {
	defer close(p.done)
	for line := range p.lines {
		io.WriteString(p.w, line)
	}
}

func (p *Printer) send(line string) {
	if p == nil {
		return
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed { // После закрытия пишем напрямую
		io.WriteString(p.w, line)
		return
	}
	p.lines <- line
}

func (p *Printer) Println(a ...any) { p.send(fmt.Sprintln(a...)) }

func (p *Printer) Printf(format string, a ...any) { p.send(fmt.Sprintf(format, a...)) }

// Реализация io.Writer, используется бэкендом логгера
func (p *Printer) Write(b []byte) (int, error) {
	p.send(string(b))
	return len(b), nil
}

// Дожидается печати всех отправленных строк
func (p *Printer) Close() {
	if p == nil {
		return
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.lines)
	p.mu.Unlock()

	<-p.done
}
