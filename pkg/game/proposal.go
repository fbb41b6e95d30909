package game

// ProposalState 表白状态
type ProposalState int

const (
	// ProposalAsking 等待回答
	ProposalAsking ProposalState = iota
	// ProposalAccepted 已同意
	ProposalAccepted
)

// hintAfterDodges 躲开超过这么多次后显示 "?" 提示
const hintAfterDodges = 2

// ProposalFlow 表白流程：拒绝按钮会躲开，只能同意
type ProposalFlow struct {
	taunts []string
	dodges int
	state  ProposalState
}

// NewProposalFlow 创建表白流程
func NewProposalFlow(taunts []string, accepted bool) *ProposalFlow {
	f := &ProposalFlow{taunts: taunts}
	if accepted {
		f.state = ProposalAccepted
	}
	return f
}

// State 当前状态
func (f *ProposalFlow) State() ProposalState { return f.state }

// Accepted 是否已同意
func (f *ProposalFlow) Accepted() bool { return f.state == ProposalAccepted }

// Dodges 拒绝按钮躲开的次数
func (f *ProposalFlow) Dodges() int { return f.dodges }

// ShowHint 是否在拒绝按钮上显示 "?" 提示
func (f *ProposalFlow) ShowHint() bool { return f.dodges > hintAfterDodges }

// Decline 拒绝按钮躲开一次，返回下一句调侃（没有配置时为空）
func (f *ProposalFlow) Decline() string {
	if f.state == ProposalAccepted {
		return ""
	}
	f.dodges++
	if len(f.taunts) == 0 {
		return ""
	}
	return f.taunts[(f.dodges-1)%len(f.taunts)]
}

// Accept 同意，第一次调用返回 true
func (f *ProposalFlow) Accept() bool {
	if f.state == ProposalAccepted {
		return false
	}
	f.state = ProposalAccepted
	return true
}
