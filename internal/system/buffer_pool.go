package system

import "sync"

// BufferPool предоставляет механизмы повторного использования кадровых
// буферов ([]byte) для снижения нагрузки на Garbage Collector (GC).
type BufferPool struct {
	pools map[int]*sync.Pool
	mu    sync.RWMutex
}

var globalPool = &BufferPool{
	pools: make(map[int]*sync.Pool),
}

// GetBuffer возвращает буфер нужного размера из пула или создает новый,
// если в пуле нет подходящего по размеру объекта.
func GetBuffer(size int) []byte {
	return globalPool.Get(size)
}

// PutBuffer возвращает буфер в пул для повторного использования.
func PutBuffer(buf []byte) {
	globalPool.Put(buf)
}

func (p *BufferPool) Get(size int) []byte {
	p.mu.RLock()
	pool, exists := p.pools[size]
	p.mu.RUnlock()

	if !exists {
		p.mu.Lock()
		// Double check
		pool, exists = p.pools[size]
		if !exists {
			sz := size
			pool = &sync.Pool{
				New: func() interface{} {
					return make([]byte, sz)
				},
			}
			p.pools[size] = pool
		}
		p.mu.Unlock()
	}

	return pool.Get().([]byte)
}

func (p *BufferPool) Put(buf []byte) {
	if buf == nil {
		return
	}
	size := cap(buf)
	p.mu.RLock()
	pool, exists := p.pools[size]
	p.mu.RUnlock()

	if exists {
		pool.Put(buf[:size])
	}
}
