package service

// 정렬 규칙: 추가는 항상 맨 뒤 (max+1), 재정렬은 받은 순서대로 0..n-1 부여.

// nextPosition 현재 position들의 최대값 + 1. 비어 있으면 0.
func nextPosition(positions []int) int {
	next := 0
	for _, p := range positions {
		if p >= next {
			next = p + 1
		}
	}
	return next
}

// assignPositions 호출자가 보낸 id 순서대로 0부터 position을 부여한다.
// 대상 범위에 없는 id는 건너뛰고 카운터도 올리지 않는다.
// 누락 검증은 하지 않는다 - 목록에 빠진 항목은 기존 position을 유지한다.
func assignPositions(orderedIDs []int64, inScope map[int64]bool, set func(id int64, pos int) error) error {
	pos := 0
	for _, id := range orderedIDs {
		if !inScope[id] {
			continue
		}
		if err := set(id, pos); err != nil {
			return err
		}
		pos++
	}
	return nil
}
