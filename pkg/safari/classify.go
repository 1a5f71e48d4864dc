package safari

import (
	"regexp"
	"strconv"
	"strings"

	"safari_go/models"
)

var (
	spawnRe = regexp.MustCompile(`(?i)wild\s+(.+?)\s+\(Lv`)
	waitRe  = regexp.MustCompile(`wait\s+(\d+)\s+second`)
)

// Фразы, после которых сервер больше не даст охотиться в этой сессии.
var blockedPhrases = []string{
	"already played",
	"limit reached",
	"out of safari balls",
	"game has finished",
}

const shinyGlyph = "✨"

// Classify сопоставляет текст и кнопки входящего сообщения с семантическим
// событием. Функция чистая: она вызывается и для новых, и для отредактированных
// сообщений, поэтому никакого состояния здесь быть не может.
//
// Порядок проверок закреплён: первое совпадение выигрывает.
func Classify(text string, buttons [][]string) models.Event {
	lower := strings.ToLower(text)

	if strings.Contains(lower, "welcome to the") && strings.Contains(lower, "safari zone") {
		return models.Event{Kind: models.EventZoneEntered}
	}
	if strings.Contains(lower, "already in the") && strings.Contains(lower, "safari zone") {
		return models.Event{Kind: models.EventZoneAlreadyIn}
	}
	for _, phrase := range blockedPhrases {
		if strings.Contains(lower, phrase) {
			return models.Event{Kind: models.EventSessionBlocked, Summary: firstLine(text)}
		}
	}
	if strings.Contains(lower, "caught a wild") {
		return models.Event{Kind: models.EventCatchSuccess, Summary: firstLine(text)}
	}

	// Экран боя: текст начинается с "Wild" (именно с заглавной — строчное
	// "wild ... (Lv" это анонс появления, см. проверку ниже) либо первая
	// кнопка предлагает бросить мяч.
	if strings.HasPrefix(strings.TrimSpace(text), "Wild") || firstButtonContains(buttons, "throw ball") {
		return models.Event{Kind: models.EventBattlePrompt}
	}

	if m := spawnRe.FindStringSubmatch(text); m != nil {
		name := strings.TrimSpace(m[1])
		shiny := strings.Contains(text, shinyGlyph) || strings.Contains(name, shinyGlyph)
		return models.Event{Kind: models.EventSpawn, Name: name, Shiny: shiny}
	}

	if strings.Contains(lower, "wait") && strings.Contains(lower, "second") {
		seconds := 0
		if m := waitRe.FindStringSubmatch(lower); m != nil {
			seconds, _ = strconv.Atoi(m[1])
		}
		return models.Event{Kind: models.EventWaitNotice, WaitSeconds: seconds}
	}

	return models.Event{Kind: models.EventUnrecognized}
}

// firstLine возвращает первую строку текста.
func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i]
	}
	return text
}

// firstButtonContains проверяет подпись самой первой кнопки сетки.
func firstButtonContains(buttons [][]string, substr string) bool {
	if len(buttons) == 0 || len(buttons[0]) == 0 {
		return false
	}
	return strings.Contains(strings.ToLower(buttons[0][0]), substr)
}
