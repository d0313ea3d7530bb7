package core

import (
	"reflect"
	"testing"
)

func TestInputFrameSetHasClear(t *testing.T) {
	var f InputFrame // zero value must be usable
	if f.Has(ActionJump) {
		t.Error("zero frame should have no actions")
	}

	f.Set(ActionJump)
	if !f.Has(ActionJump) {
		t.Error("Set(ActionJump) not visible through Has")
	}
	if f.Empty() {
		t.Error("frame with an action should not be empty")
	}

	f.Clear()
	if f.Has(ActionJump) || !f.Empty() {
		t.Error("Clear should remove all actions")
	}
}

func TestInputFrameListSorted(t *testing.T) {
	f := FrameOf(ActionRestart, ActionJump, ActionPause)

	got := f.List()
	want := []Action{ActionJump, ActionPause, ActionRestart}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, expected %v", got, want)
	}
}

func TestInputFrameClone(t *testing.T) {
	f := FrameOf(ActionJump)
	c := f.Clone()
	f.Clear()

	if !c.Has(ActionJump) {
		t.Error("clone should not share storage with the original")
	}
}

func TestActionString(t *testing.T) {
	if ActionJump.String() != "Jump" || Action(99).String() != "Unknown" {
		t.Error("unexpected action names")
	}
}

func TestEventNames(t *testing.T) {
	if EventGameOver.String() != "game_over" {
		t.Errorf("EventGameOver.String() = %q", EventGameOver.String())
	}
	if ReasonSecondStrike.String() != "second_strike" {
		t.Errorf("ReasonSecondStrike.String() = %q", ReasonSecondStrike.String())
	}
}
