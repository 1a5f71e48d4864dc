package safari

import (
	"testing"

	"safari_go/models"
)

// TestClassifySpawn проверяет извлечение имени существа из анонса появления.
func TestClassifySpawn(t *testing.T) {
	ev := Classify("A wild Pikachu (Lv 12) has appeared!", nil)
	if ev.Kind != models.EventSpawn {
		t.Fatalf("ожидалось событие SPAWN, получено %s", ev.Kind)
	}
	if ev.Name != "Pikachu" {
		t.Errorf("ожидалось имя Pikachu, получено %q", ev.Name)
	}
	if ev.Shiny {
		t.Errorf("существо без глифа не должно считаться шайни")
	}
}

// TestClassifySpawnShiny проверяет распознавание шайни по глифу в тексте.
func TestClassifySpawnShiny(t *testing.T) {
	ev := Classify("A wild ✨Mewtwo✨ (Lv 40) has appeared!", nil)
	if ev.Kind != models.EventSpawn {
		t.Fatalf("ожидалось событие SPAWN, получено %s", ev.Kind)
	}
	if !ev.Shiny {
		t.Errorf("глиф ✨ должен помечать существо как шайни")
	}
}

// TestClassifyLowercaseWildIsSpawn проверяет, что строчное "wild ... (Lv"
// остаётся анонсом появления, а не экраном боя.
func TestClassifyLowercaseWildIsSpawn(t *testing.T) {
	ev := Classify("wild Mewtwo (Lv 40) is nearby", nil)
	if ev.Kind != models.EventSpawn {
		t.Fatalf("ожидалось событие SPAWN, получено %s", ev.Kind)
	}
	if ev.Name != "Mewtwo" {
		t.Errorf("ожидалось имя Mewtwo, получено %q", ev.Name)
	}
}

// TestClassifyBattlePromptByPrefix проверяет распознавание экрана боя по заглавному "Wild".
func TestClassifyBattlePromptByPrefix(t *testing.T) {
	ev := Classify("Wild Pikachu (Lv 12)\nHP 30/30\nWhat will you do?", nil)
	if ev.Kind != models.EventBattlePrompt {
		t.Fatalf("ожидалось событие BATTLE_PROMPT, получено %s", ev.Kind)
	}
}

// TestClassifyBattlePromptByButton проверяет распознавание боя по первой кнопке.
func TestClassifyBattlePromptByButton(t *testing.T) {
	buttons := [][]string{{"Throw Ball x10"}, {"Run"}}
	ev := Classify("Choose your move", buttons)
	if ev.Kind != models.EventBattlePrompt {
		t.Fatalf("ожидалось событие BATTLE_PROMPT, получено %s", ev.Kind)
	}
}

// TestClassifyBattleButtonNotFirst проверяет, что кнопка броска
// не в первой позиции сетки экран боя не означает.
func TestClassifyBattleButtonNotFirst(t *testing.T) {
	buttons := [][]string{{"Bag"}, {"Throw Ball x10"}}
	ev := Classify("Choose your move", buttons)
	if ev.Kind == models.EventBattlePrompt {
		t.Fatalf("бой распознаётся только по самой первой кнопке сетки")
	}
}

// TestClassifyCatchBeatsSpawn проверяет приоритет поимки над анонсом:
// текст поимки тоже содержит шаблон "wild ... (Lv".
func TestClassifyCatchBeatsSpawn(t *testing.T) {
	ev := Classify("You caught a wild Pikachu (Lv 12)!\n+50 exp", nil)
	if ev.Kind != models.EventCatchSuccess {
		t.Fatalf("ожидалось событие CATCH_SUCCESS, получено %s", ev.Kind)
	}
	if ev.Summary != "You caught a wild Pikachu (Lv 12)!" {
		t.Errorf("сводка должна быть первой строкой, получено %q", ev.Summary)
	}
}

// TestClassifyBlocked проверяет распознавание закрытия сессии сервером.
func TestClassifyBlocked(t *testing.T) {
	ev := Classify("You are out of Safari Balls!\nCome back tomorrow.", nil)
	if ev.Kind != models.EventSessionBlocked {
		t.Fatalf("ожидалось событие SESSION_BLOCKED, получено %s", ev.Kind)
	}
	if ev.Summary != "You are out of Safari Balls!" {
		t.Errorf("сводка должна быть первой строкой, получено %q", ev.Summary)
	}
}

// TestClassifyZoneEvents проверяет распознавание входа в зону и повторного входа.
func TestClassifyZoneEvents(t *testing.T) {
	if ev := Classify("Welcome to the Safari Zone!", nil); ev.Kind != models.EventZoneEntered {
		t.Errorf("ожидалось событие ZONE_ENTERED, получено %s", ev.Kind)
	}
	if ev := Classify("You are already in the Safari Zone.", nil); ev.Kind != models.EventZoneAlreadyIn {
		t.Errorf("ожидалось событие ZONE_ALREADY_IN, получено %s", ev.Kind)
	}
}

// TestClassifyWaitNotice проверяет извлечение числа секунд из требования подождать.
func TestClassifyWaitNotice(t *testing.T) {
	ev := Classify("Please wait 12 seconds before hunting again.", nil)
	if ev.Kind != models.EventWaitNotice {
		t.Fatalf("ожидалось событие WAIT_NOTICE, получено %s", ev.Kind)
	}
	if ev.WaitSeconds != 12 {
		t.Errorf("ожидалось 12 секунд, получено %d", ev.WaitSeconds)
	}
}

// TestClassifyWaitNoticeWithoutNumber проверяет требование подождать без числа.
func TestClassifyWaitNoticeWithoutNumber(t *testing.T) {
	ev := Classify("Wait a few seconds, hunter!", nil)
	if ev.Kind != models.EventWaitNotice {
		t.Fatalf("ожидалось событие WAIT_NOTICE, получено %s", ev.Kind)
	}
	if ev.WaitSeconds != 0 {
		t.Errorf("число не указано, WaitSeconds должен быть 0, получено %d", ev.WaitSeconds)
	}
}

// TestClassifyUnrecognized проверяет, что посторонний текст не рождает событий.
func TestClassifyUnrecognized(t *testing.T) {
	ev := Classify("Your inventory: 5 Safari Balls", nil)
	if ev.Kind != models.EventUnrecognized {
		t.Fatalf("ожидалось событие UNRECOGNIZED, получено %s", ev.Kind)
	}
}
