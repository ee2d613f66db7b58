package system

import (
	"image"
	"sync"
)

// FramePool хранит кадры одного канонического разрешения: разметка турнира
// нарисована под один размер экрана, и все скриншоты приводятся к нему.
// Кадры другого размера (разрешение источника не задано) создаются заново
// и в пул не возвращаются. Нулевой *FramePool тоже рабочий: он всегда
// выделяет новый кадр.
type FramePool struct {
	rect   image.Rectangle
	frames sync.Pool
}

// NewFramePool готовит пул под width x height. Без размера вернет nil.
func NewFramePool(width, height int) *FramePool {
	if width <= 0 || height <= 0 {
		return nil
	}
	return &FramePool{rect: image.Rect(0, 0, width, height)}
}

// Size is the frame rectangle the pool serves; empty for a nil pool
func (p *FramePool) Size() image.Rectangle {
	if p == nil {
		return image.Rectangle{}
	}
	return p.rect
}

// Get returns a width x height frame. Pooled frames keep old pixels:
// the caller overwrites every pixel.
func (p *FramePool) Get(width, height int) *image.RGBA {
	rect := image.Rect(0, 0, width, height)
	if p == nil || rect != p.rect {
		return image.NewRGBA(rect)
	}
	if img, ok := p.frames.Get().(*image.RGBA); ok {
		return img
	}
	return image.NewRGBA(rect)
}

// Put hands a frame back. Frames of a foreign size are left to the GC.
func (p *FramePool) Put(img *image.RGBA) {
	if p == nil || img == nil || img.Rect != p.rect {
		return
	}
	p.frames.Put(img)
}
