// Package safari реализует автономный цикл охоты одного аккаунта:
// классификацию ответов игрового бота, машину состояний сессии,
// цикл отправки команд и обработку поимки.
package safari

import "time"

const (
	// DefaultGameBot — username игрового бота, в чате с которым идёт охота.
	DefaultGameBot = "HeXamonbot"

	HuntCommand  = "/hunt"
	EnterCommand = "/enter"

	// Подписи inline-кнопок игрового бота. Поиск ведётся по подстроке
	// без учёта регистра, поэтому точный текст кнопки не важен.
	ThrowButtonLabel  = "Throw Ball"
	EngageButtonLabel = "Engage"

	DefaultBall     = "Safari Ball"
	DefaultInterval = 2.5
	MinInterval     = 1.0

	zoneEntryAttempts = 5
	zoneEntryDelay    = 5 * time.Second

	clickAttempts = 3
	clickBackoff  = 500 * time.Millisecond
)

// DefaultWatchlist — стартовый список существ, ради которых стоит вступать в бой.
var DefaultWatchlist = []string{
	"Mewtwo", "Lugia", "Ho-Oh", "Celebi", "Latias", "Latios",
	"Kyogre", "Groudon", "Rayquaza", "Jirachi", "Deoxys", "Dialga", "Palkia",
	"Regigigas", "Giratina", "Cresselia",
	"Darkrai", "Shaymin", "Arceus",
	"Victini", "Reshiram", "Zekrom", "Kyurem",
	"Keldeo", "Genesect",
	"Xerneas", "Yveltal", "Zygarde", "Hoopa", "Cosmog", "Cosmoem", "Solgaleo",
	"Lunala", "Necrozma", "Magearna", "Marshadow", "Zeraora", "Meltan", "Melmetal",
	"Zacian", "Zamazenta", "Eternatus", "Kubfu", "Urshifu", "Glastrier", "Spectrier", "Calyrex",
	"Enamorus",
}
