package arena

import "unsafe"

func sizeofImpl[T any](zero T) int {
	return int(unsafe.Sizeof(zero))
}

func alignofImpl[T any](zero T) int {
	return int(unsafe.Alignof(zero))
}
