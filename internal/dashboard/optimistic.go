package dashboard

import "context"

// Snapshotter 可快照与恢复的本地状态
type Snapshotter[S any] interface {
	Snapshot() S
	Restore(snapshot S)
}

// Optimistic 乐观更新：快照后先在本地应用，远端调用失败时恢复快照并返回错误
func Optimistic[S any](ctx context.Context, state Snapshotter[S], apply func(), remote func(ctx context.Context) error) error {
	snapshot := state.Snapshot()
	if apply != nil {
		apply()
	}
	if err := remote(ctx); err != nil {
		state.Restore(snapshot)
		return err
	}
	return nil
}
