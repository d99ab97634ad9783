package pkg

import "sync"

type HasLocker interface{ GetLocker() *sync.RWMutex }

func LockWrapRes[T any](i HasLocker, f func() T) T {
	i.GetLocker().Lock()
	defer i.GetLocker().Unlock()
	return f()
}

func RLockWrapRes[T any](i HasLocker, f func() T) T {
	i.GetLocker().RLock()
	defer i.GetLocker().RUnlock()
	return f()
}
