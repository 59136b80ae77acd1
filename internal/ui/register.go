package ui

import "phoenicia/internal/core"

func init() {
	core.Register(core.KindDefault, newDefaultPanel)
	core.Register(core.KindDebug, newDebugPanel)
	core.Register(core.KindInventory, newInventoryPanel)
	core.Register(core.KindMarket, newMarketPanel)
	core.Register(core.KindWorkshop, newWorkshopPanel)
	core.Register(core.KindWordBuilder, newWordBuilderPanel)
	core.Register(core.KindLevelIntro, newIntroPanel)
	core.Register(core.KindNewLevel, newNewLevelPanel)
	core.Register(core.KindNextLevelReq, newRequirementsPanel)
	core.Register(core.KindLetterPlacement, newLetterPlacement)
	core.Register(core.KindWordPlacement, newWordPlacement)
	core.Register(core.KindDecorationPlacement, newDecorationPlacement)
	core.Register(core.KindGamePlacement, newGamePlacement)
	core.Register(core.GameKind("wordmatch"), newWordMatch)
	core.Register(core.GameKind("imagematch"), newImageMatch)
	core.RegisterTour(newTour)
}
