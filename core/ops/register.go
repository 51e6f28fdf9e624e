package ops

import "github.com/npucost/npucost/core"

func init() {
	core.Behaviors[core.OpConv] = convBehavior{}
	core.Behaviors[core.OpDWConv] = dwConvBehavior{}
	core.Behaviors[core.OpEltwiseAdd] = eltwiseBehavior{}
	core.Behaviors[core.OpEltwiseMul] = eltwiseBehavior{}
	core.Behaviors[core.OpMaxPool] = poolBehavior{}
	core.Behaviors[core.OpAvgPool] = poolBehavior{}
	core.Behaviors[core.OpCMConv] = cmConvBehavior{}
	core.Behaviors[core.OpLayerNorm] = layerNormBehavior{}
}
