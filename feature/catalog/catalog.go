package catalog

// Game identifies one of the tracked gacha games.
type Game string

const (
	GameGenshin  Game = "genshin"
	GameStarRail Game = "starrail"
	GameZenless  Game = "zenless"
)

// Category identifies one pull category (banner type) within a game.
type Category string

const (
	// Genshin Impact
	CategoryCharacterEvent Category = "character_event"
	CategoryWeaponEvent    Category = "weapon_event"
	CategoryStandard       Category = "standard"
	CategoryBeginner       Category = "beginner"
	CategoryChronicled     Category = "chronicled"

	// Honkai: Star Rail
	CategoryLightConeEvent Category = "light_cone_event"
	CategoryDeparture      Category = "departure"

	// Zenless Zone Zero
	CategoryExclusive Category = "exclusive"
	CategoryWEngine   Category = "w_engine"
	CategoryBangboo   Category = "bangboo"
)

// CategoryInfo describes one pull category of a game.
type CategoryInfo struct {
	// Key is the category identifier used in routes and storage.
	Key Category
	// Featured reports whether the featured-guarantee ("50/50") mechanic
	// applies, which makes win/loss statistics meaningful.
	Featured bool
}

// GameInfo describes one tracked game.
type GameInfo struct {
	// Key is the game identifier used in routes and storage.
	Key Game
	// TopRarity is the highest item rarity of the game (win/loss outcomes are
	// decided on draws of this rarity).
	TopRarity int32
	// Categories lists the game's pull categories.
	Categories []CategoryInfo
}

var games = []GameInfo{
	{
		Key:       GameGenshin,
		TopRarity: 5,
		Categories: []CategoryInfo{
			{Key: CategoryCharacterEvent, Featured: true},
			{Key: CategoryWeaponEvent, Featured: true},
			{Key: CategoryStandard},
			{Key: CategoryBeginner},
			{Key: CategoryChronicled},
		},
	},
	{
		Key:       GameStarRail,
		TopRarity: 5,
		Categories: []CategoryInfo{
			{Key: CategoryCharacterEvent, Featured: true},
			{Key: CategoryLightConeEvent, Featured: true},
			{Key: CategoryStandard},
			{Key: CategoryDeparture},
		},
	},
	{
		Key:       GameZenless,
		TopRarity: 5,
		Categories: []CategoryInfo{
			{Key: CategoryExclusive, Featured: true},
			{Key: CategoryWEngine, Featured: true},
			{Key: CategoryStandard},
			{Key: CategoryBangboo},
		},
	},
}

var gameIndex = func() map[Game]GameInfo {
	idx := make(map[Game]GameInfo, len(games))
	for _, g := range games {
		idx[g.Key] = g
	}
	return idx
}()

// Games returns all tracked games in declaration order.
func Games() []GameInfo {
	return games
}

// Lookup returns the game info for key.
func Lookup(game Game) (GameInfo, bool) {
	g, ok := gameIndex[game]
	return g, ok
}

// ValidGame reports whether game is tracked.
func ValidGame(game Game) bool {
	_, ok := gameIndex[game]
	return ok
}

// ValidCategory reports whether category exists within game.
func ValidCategory(game Game, category Category) bool {
	g, ok := gameIndex[game]
	if !ok {
		return false
	}
	for _, c := range g.Categories {
		if c.Key == category {
			return true
		}
	}
	return false
}

// HasFeaturedGuarantee reports whether the featured-guarantee mechanic applies
// to the given game/category pair.
func HasFeaturedGuarantee(game Game, category Category) bool {
	g, ok := gameIndex[game]
	if !ok {
		return false
	}
	for _, c := range g.Categories {
		if c.Key == category {
			return c.Featured
		}
	}
	return false
}

// TopRarity returns the highest rarity of the game, or 0 for unknown games.
func TopRarity(game Game) int32 {
	return gameIndex[game].TopRarity
}
