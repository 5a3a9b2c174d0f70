package world

import (
	"testing"

	"github.com/curzel-it/nokemon-sub001/internal/core"
	"github.com/curzel-it/nokemon-sub001/internal/maps"
	"github.com/curzel-it/nokemon-sub001/internal/species"
	"github.com/curzel-it/nokemon-sub001/internal/storage"
)

type testEnv struct {
	world     *World
	factory   *Factory
	values    *storage.Values
	inventory *storage.Inventory
}

func newTestEnv(t *testing.T, rows, cols int) *testEnv {
	t.Helper()
	repo, err := species.Default()
	if err != nil {
		t.Fatalf("species.Default() failed: %v", err)
	}
	env := &testEnv{
		factory:   NewFactory(repo, 10),
		values:    storage.NewValues(nil),
		inventory: storage.NewInventory(nil),
	}
	env.world = New(Options{
		ID:        IDDemo,
		Rows:      rows,
		Cols:      cols,
		Viewport:  core.NewIntRect(0, 0, cols, rows),
		Values:    env.values,
		Inventory: env.inventory,
		Factory:   env.factory,
	})
	return env
}

// spawn adds an entity of the species at (x, y) and returns the live pointer.
func (env *testEnv) spawn(t *testing.T, id species.ID, x, y int) *Entity {
	t.Helper()
	e, err := env.factory.Make(id)
	if err != nil {
		t.Fatalf("Make(%d) failed: %v", id, err)
	}
	e.Frame.X, e.Frame.Y = x, y
	return env.world.entities[env.world.Add(e)]
}

// spawnHero adds a one-tile hero at (x, y).
func (env *testEnv) spawnHero(t *testing.T, x, y int) *Entity {
	t.Helper()
	hero := env.spawn(t, species.Hero, x, y)
	hero.Frame.H = 1
	env.world.Setup()
	return hero
}

func keys(direction core.Direction) core.KeyboardState {
	return core.KeyboardState{Direction: direction}
}

func TestPatrollingNpcScenario(t *testing.T) {
	env := newTestEnv(t, 10, 10)
	env.spawnHero(t, 5, 5)

	npc := &Entity{
		Body: Body{
			ID:                         7,
			Frame:                      core.NewIntRect(0, 0, 1, 1),
			BaseSpeed:                  1,
			Hp:                         100,
			Lifespan:                   Unlimited,
			IsRigid:                    true,
			RequiresCollisionDetection: true,
		},
		Kind: species.KindNpc,
	}
	patrol, err := NewPatrol(npc.Frame, []PatrolSegment{{Direction: core.DirectionRight, Steps: 2}})
	if err != nil {
		t.Fatalf("NewPatrol() failed: %v", err)
	}
	npc.Patrol = patrol
	if id := env.world.Add(npc); id != 7 {
		t.Fatalf("Add() = %d, expected 7", id)
	}
	env.world.Setup()

	for i := 0; i < 2; i++ {
		env.world.Tick(1.0, keys(core.DirectionStill))
	}

	got, ok := env.world.Entity(7)
	if !ok {
		t.Fatal("npc 7 should still exist")
	}
	if got.Frame.X != 2 {
		t.Errorf("npc Frame.X = %d, expected 2", got.Frame.X)
	}
	if got.Direction != core.DirectionRight {
		t.Errorf("npc Direction = %v, expected right", got.Direction)
	}
	if !env.world.IsVisible(HeroID) || !env.world.IsVisible(7) {
		t.Errorf("Visible() = %v, expected to contain 420 and 7", env.world.Visible())
	}
}

func TestFastPatrolStopsAtSegmentEnd(t *testing.T) {
	env := newTestEnv(t, 10, 10)
	env.spawnHero(t, 8, 8)

	npc := &Entity{
		Body: Body{
			ID:                         7,
			Frame:                      core.NewIntRect(0, 0, 1, 1),
			BaseSpeed:                  3,
			Hp:                         100,
			Lifespan:                   Unlimited,
			IsRigid:                    true,
			RequiresCollisionDetection: true,
		},
		Kind: species.KindNpc,
	}
	patrol, err := NewPatrol(npc.Frame, []PatrolSegment{
		{Direction: core.DirectionRight, Steps: 2},
		{Direction: core.DirectionDown, Steps: 2},
	})
	if err != nil {
		t.Fatalf("NewPatrol() failed: %v", err)
	}
	npc.Patrol = patrol
	env.world.Add(npc)
	env.world.Setup()

	tests := []struct {
		x, y      int
		direction core.Direction
		index     int
	}{
		{2, 0, core.DirectionDown, 1},
		{2, 2, core.DirectionRight, 0},
		{4, 2, core.DirectionDown, 1},
	}
	for i, tt := range tests {
		env.world.Tick(1.0, keys(core.DirectionStill))

		got, ok := env.world.Entity(7)
		if !ok {
			t.Fatalf("tick %d: npc 7 should still exist", i+1)
		}
		if got.Frame.X != tt.x || got.Frame.Y != tt.y {
			t.Errorf("tick %d: npc Frame = (%d, %d), expected (%d, %d)", i+1, got.Frame.X, got.Frame.Y, tt.x, tt.y)
		}
		if got.Direction != tt.direction {
			t.Errorf("tick %d: npc Direction = %v, expected %v", i+1, got.Direction, tt.direction)
		}
		if got.Patrol.Index() != tt.index {
			t.Errorf("tick %d: Patrol.Index() = %d, expected %d", i+1, got.Patrol.Index(), tt.index)
		}
	}
}

func buildDeterminismWorld(t *testing.T) *testEnv {
	env := newTestEnv(t, 20, 20)
	env.inventory.Add(uint32(species.Kunai))
	env.inventory.Add(uint32(species.Kunai))
	env.spawnHero(t, 10, 10)

	for i, segments := range [][]PatrolSegment{
		{{Direction: core.DirectionRight, Steps: 3}, {Direction: core.DirectionDown, Steps: 2}},
		{{Direction: core.DirectionLeft, Steps: 4}, {Direction: core.DirectionUp, Steps: 1}},
	} {
		npc := env.spawn(t, 3010, 2+i*6, 2)
		patrol, err := NewPatrol(npc.Frame, segments)
		if err != nil {
			t.Fatalf("NewPatrol() failed: %v", err)
		}
		npc.Patrol = patrol
	}
	env.spawn(t, 3010, 10, 14)
	env.world.Setup()
	return env
}

func TestTickDeterminism(t *testing.T) {
	inputs := make([]core.KeyboardState, 240)
	for i := range inputs {
		switch {
		case i%60 < 20:
			inputs[i] = keys(core.DirectionDown)
		case i%60 == 30:
			inputs[i] = core.KeyboardState{Direction: core.DirectionStill, Attack: true}
		default:
			inputs[i] = keys(core.DirectionStill)
		}
	}

	run := func() View {
		env := buildDeterminismWorld(t)
		for _, input := range inputs {
			env.world.Tick(1.0/60.0, input)
		}
		return env.world.View()
	}

	first, second := run(), run()
	if first.Hash() != second.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", first.Hash(), second.Hash())
	}
	if len(first.Entities) != len(second.Entities) {
		t.Fatalf("Determinism failed: entity counts differ. Run1=%d, Run2=%d", len(first.Entities), len(second.Entities))
	}
	for i := range first.Entities {
		if first.Entities[i] != second.Entities[i] {
			t.Errorf("Determinism failed: entity %d differs. Run1=%+v, Run2=%+v", i, first.Entities[i], second.Entities[i])
		}
	}
}

func TestLifespan(t *testing.T) {
	env := newTestEnv(t, 10, 10)
	env.spawnHero(t, 0, 0)

	finite := env.spawn(t, 2100, 5, 5)
	finite.Lifespan = 3
	unlimited := env.spawn(t, 2100, 6, 6)
	short := env.spawn(t, 2100, 7, 7)
	short.Lifespan = 0.25

	env.world.Tick(0.5, keys(core.DirectionStill))

	got, ok := env.world.Entity(finite.ID)
	if !ok || got.Lifespan != 2.5 {
		t.Errorf("finite Lifespan = %v, expected 2.5", got.Lifespan)
	}
	for i := 0; i < 10; i++ {
		env.world.Tick(0.5, keys(core.DirectionStill))
	}
	if got, _ := env.world.Entity(unlimited.ID); got.Lifespan != Unlimited {
		t.Errorf("unlimited Lifespan = %v, expected %v", got.Lifespan, Unlimited)
	}
	if _, ok := env.world.Entity(short.ID); ok {
		t.Error("expired entity should have been removed")
	}
	if _, ok := env.world.Entity(finite.ID); ok {
		t.Error("entity should have been removed once its lifespan went negative")
	}
}

func TestComputeVisibleEntities(t *testing.T) {
	viewport := core.NewIntRect(10, 10, 10, 10)
	entities := map[EntityID]*Entity{
		HeroID: {Body: Body{ID: HeroID, Frame: core.NewIntRect(100, 100, 1, 1)}},
		1:      {Body: Body{ID: 1, Frame: core.NewIntRect(12, 12, 1, 1)}},
		2:      {Body: Body{ID: 2, Frame: core.NewIntRect(0, 0, 2, 2)}},
		3:      {Body: Body{ID: 3, Frame: core.NewIntRect(20, 12, 1, 1)}},
		4:      {Body: Body{ID: 4, Frame: core.NewIntRect(5, 12, 5, 1)}},
		5:      {Body: Body{ID: 5, Frame: core.NewIntRect(12, 21, 1, 1)}},
	}

	visible := ComputeVisibleEntities(entities, viewport)
	expected := []EntityID{1, 3, 4, HeroID}

	if len(visible) != len(expected) {
		t.Fatalf("ComputeVisibleEntities() = %v, expected %v", visible, expected)
	}
	for i := range expected {
		if visible[i] != expected[i] {
			t.Errorf("ComputeVisibleEntities()[%d] = %d, expected %d", i, visible[i], expected[i])
		}
	}
}

func TestComputeWeightMap(t *testing.T) {
	entities := map[EntityID]*Entity{
		1: {Body: Body{ID: 1, Frame: core.NewIntRect(2, 3, 1, 1)}, Kind: species.KindStaticObject},
		2: {Body: Body{ID: 2, Frame: core.NewIntRect(4, 4, 2, 3)}, Kind: species.KindStaticObject},
		3: {Body: Body{ID: 3, Frame: core.NewIntRect(2, 3, 1, 1)}, Kind: species.KindPressurePlate},
		4: {Body: Body{ID: 4, Frame: core.NewIntRect(8, 8, 1, 1)}, Kind: species.KindStaticObject, SpeciesID: species.DeepHole},
		5: {Body: Body{ID: 5, Frame: core.NewIntRect(9, 9, 3, 3)}, Kind: species.KindStaticObject},
		6: {Body: Body{ID: 6, Frame: core.NewIntRect(1, 1, 1, 1)}, Kind: species.KindBullet},
		7: {Body: Body{ID: 7, Frame: core.NewIntRect(2, 1, 1, 1)}, Kind: species.KindHint},
	}
	weights := ComputeWeightMap(entities, []EntityID{1, 2, 3, 4, 5, 6, 7}, 10, 10)

	tests := []struct {
		name     string
		row, col int
		expected int
	}{
		{"single row entity", 3, 2, 1},
		{"top row of tall entity", 4, 4, 0},
		{"base of tall entity", 5, 4, 1},
		{"base of tall entity right column", 6, 5, 1},
		{"deep hole has no weight", 8, 8, 0},
		{"bullet flies over the floor", 1, 1, 0},
		{"hint has no weight", 1, 2, 0},
		{"clipped to bounds", 9, 9, 0},
		{"empty tile", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := weights.At(tt.row, tt.col); got != tt.expected {
				t.Errorf("At(%d, %d) = %d, expected %d", tt.row, tt.col, got, tt.expected)
			}
		})
	}
}

func TestBulletHitsOthersButNotItsShooter(t *testing.T) {
	tests := []struct {
		name        string
		parentIsHit bool
		expectedHit bool
	}{
		{"shooter is skipped", true, false},
		{"unrelated entity is hit", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, 10, 10)
			env.spawnHero(t, 0, 9)
			target := env.spawn(t, 3010, 3, 5)

			bullet := env.spawn(t, species.Kunai, 2, 5)
			bullet.Direction = core.DirectionRight
			bullet.CurrentSpeed = 1
			if tt.parentIsHit {
				bullet.ParentID = target.ID
			} else {
				bullet.ParentID = HeroID
			}
			env.world.RefreshSpatialIndex()

			updates := bullet.Update(env.world.snapshot(keys(core.DirectionStill)), 1.0)

			hits := 0
			for _, u := range updates {
				if hit, ok := u.(HandleHit); ok {
					hits++
					if hit.Target != target.ID || hit.Shooter != bullet.ID {
						t.Errorf("HandleHit = %+v, expected shooter %d and target %d", hit, bullet.ID, target.ID)
					}
				}
			}
			if tt.expectedHit && hits != 1 {
				t.Errorf("hits = %d, expected 1", hits)
			}
			if !tt.expectedHit && hits != 0 {
				t.Errorf("hits = %d, expected 0", hits)
			}
		})
	}
}

func TestBulletLeavesTheWorld(t *testing.T) {
	env := newTestEnv(t, 5, 5)
	env.spawnHero(t, 0, 0)
	bullet := env.spawn(t, species.Kunai, 4, 2)
	bullet.Direction = core.DirectionRight

	env.world.Tick(1.0, keys(core.DirectionStill))

	if _, ok := env.world.Entity(bullet.ID); ok {
		t.Error("bullet should be removed at the world edge")
	}
}

func TestNoMidTickMutation(t *testing.T) {
	env := newTestEnv(t, 10, 10)
	env.inventory.Add(uint32(species.Kunai))
	env.spawnHero(t, 5, 2)

	before := env.world.Len()
	updates := env.world.Tick(0.05, core.KeyboardState{Direction: core.DirectionStill, Attack: true})

	if env.world.Len() != before+1 {
		t.Fatalf("Len() = %d, expected %d", env.world.Len(), before+1)
	}

	var bullet Entity
	for _, id := range env.world.SortedIDs() {
		if e, _ := env.world.Entity(id); e.Kind == species.KindBullet {
			bullet = e
		}
	}
	if bullet.ID == NoParent {
		t.Fatal("kunai was not added")
	}
	if bullet.Lifespan != 5 {
		t.Errorf("new kunai Lifespan = %v, expected 5 (not updated in the tick that created it)", bullet.Lifespan)
	}
	if bullet.Frame.X != 5 || bullet.Frame.Y != 3 || bullet.ParentID != HeroID {
		t.Errorf("kunai = %+v, expected at (5, 3) with the hero as parent", bullet.Body)
	}

	removed := false
	for _, u := range updates {
		if r, ok := u.(RemoveFromInventory); ok && r.Species == species.Kunai {
			removed = true
		}
	}
	if !removed {
		t.Errorf("Tick() = %v, expected a RemoveFromInventory for the kunai", updates)
	}
}

func TestPanickingEntityIsIsolated(t *testing.T) {
	env := newTestEnv(t, 10, 10)
	env.spawnHero(t, 0, 0)

	broken := env.spawn(t, 3010, 2, 2)
	broken.Patrol = &Patrol{}
	healthy := env.spawn(t, 2100, 4, 4)
	healthy.Lifespan = 2

	env.world.Tick(0.5, keys(core.DirectionStill))

	if got, _ := env.world.Entity(healthy.ID); got.Lifespan != 1.5 {
		t.Errorf("healthy Lifespan = %v, expected 1.5", got.Lifespan)
	}
	if _, ok := env.world.Entity(broken.ID); !ok {
		t.Error("broken entity should stay in the world")
	}
}

func TestHandleHit(t *testing.T) {
	env := newTestEnv(t, 10, 10)
	hero := env.spawnHero(t, 0, 0)
	slime := env.spawn(t, 3010, 5, 5)
	tree := env.spawn(t, 5001, 7, 7)
	kunai := env.spawn(t, species.Kunai, 1, 1)

	env.world.Apply(HandleHit{Shooter: kunai.ID, Target: slime.ID})
	if _, ok := env.world.Entity(slime.ID); ok {
		t.Error("slime should be removed once out of hp")
	}

	env.world.Apply(HandleHit{Shooter: kunai.ID, Target: tree.ID})
	if _, ok := env.world.Entity(tree.ID); !ok {
		t.Error("invulnerable tree should survive")
	}

	hero.Hp = 50
	updates := env.world.Apply(HandleHit{Shooter: kunai.ID, Target: HeroID})
	if len(updates) != 1 {
		t.Fatalf("Apply() = %v, expected HeroDied", updates)
	}
	if _, ok := updates[0].(HeroDied); !ok {
		t.Errorf("Apply() = %T, expected HeroDied", updates[0])
	}
	if _, ok := env.world.Hero(); !ok {
		t.Error("the hero is never removed by a hit")
	}

	if updates := env.world.Apply(HandleHit{Shooter: 9999, Target: HeroID}); len(updates) != 0 {
		t.Errorf("hit from a missing shooter = %v, expected no-op", updates)
	}
}

func TestApplyNoOps(t *testing.T) {
	env := newTestEnv(t, 4, 4)
	env.spawnHero(t, 0, 0)

	env.world.Apply(
		RemoveEntity{ID: HeroID},
		RemoveEntity{ID: 12345},
		BiomeTileChange{Row: 10, Col: 10, Biome: maps.BiomeWater},
		ConstructionTileChange{Row: -1, Col: 0, Construction: maps.ConstructionStoneWall},
		IncreaseHp{ID: 777, Delta: 5},
	)

	if _, ok := env.world.Hero(); !ok {
		t.Error("RemoveEntity(hero) should be ignored")
	}

	env.world.Apply(BiomeTileChange{Row: 1, Col: 2, Biome: maps.BiomeWater})
	if tile, _ := env.world.Biome().At(1, 2); tile.Type != maps.BiomeWater {
		t.Errorf("Biome().At(1, 2) = %v, expected water", tile.Type)
	}
	if tile, _ := env.world.Biome().At(1, 1); tile.Right != maps.BiomeWater {
		t.Errorf("neighbour Right = %v, expected water", tile.Right)
	}
}

func TestAddEntityMintsFreshIDs(t *testing.T) {
	env := newTestEnv(t, 10, 10)
	env.spawnHero(t, 0, 0)
	existing := env.spawn(t, 2100, 1, 1)

	e, _ := env.factory.Make(2100)
	e.ID = existing.ID
	env.world.Apply(AddEntity{Entity: e})

	if e.ID == existing.ID || e.ID == HeroID || e.ID == NoParent {
		t.Errorf("AddEntity id = %d, expected a fresh id", e.ID)
	}
	if env.world.Len() != 3 {
		t.Errorf("Len() = %d, expected 3", env.world.Len())
	}
}

func TestIDAllocatorSkipsReservedIDs(t *testing.T) {
	a := NewIDAllocator()
	a.Observe(418)
	first, second := a.Next(), a.Next()
	if first != 419 || second != 421 {
		t.Errorf("Next() = %d, %d; expected 419, 421", first, second)
	}
}
