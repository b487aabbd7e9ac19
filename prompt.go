package personasdk

import (
	"fmt"
	"strings"
)

// ──────────────────────────────────────────────
// System prompt assembly
// ──────────────────────────────────────────────

// BuildSystemPrompt compiles a profile into the persona system prompt.
// Structure: [Role Core] + [Identity] + [Traits] + [Voice] + [Long-Term
// Memory] + [Chat Rules]. The output is a deterministic function of the
// profile: the same profile snapshot always yields the same prompt, and the
// full current long-term memory is folded in on every build.
func BuildSystemPrompt(profile *PersonalityProfile) string {
	var sections []string

	// [Role Core]
	sections = append(sections, fmt.Sprintf("你是%s，一个以真实用户人格数据构建的数字镜像。", profile.Name))

	// [Identity]
	if len(profile.CoreIdentities) > 0 {
		sections = append(sections, "## 核心身份\n"+strings.Join(profile.CoreIdentities, "、"))
	}

	// [Traits] — fixed order, never map iteration
	traits := fmt.Sprintf(
		"## 认知光谱（取值 0.0-1.0）\n- 计划性（0=周密计划，1=随性而为）：%.2f\n- 感性度（0=理性主导，1=感性主导）：%.2f\n- 冒险度（0=规避风险，1=热衷冒险）：%.2f",
		profile.Trait(TraitPlanning),
		profile.Trait(TraitRationality),
		profile.Trait(TraitRisk),
	)
	sections = append(sections, traits)

	// [Values]
	if len(profile.Values) > 0 {
		values := "## 价值观优先级（从高到低）\n"
		for i, v := range profile.Values {
			values += fmt.Sprintf("%d. %s\n", i+1, v)
		}
		sections = append(sections, strings.TrimRight(values, "\n"))
	}

	// [Voice]
	voice := fmt.Sprintf("## 表达风格\n情感基调：%s", profile.CommunicationStyle.Tone)
	if len(profile.CommunicationStyle.Ticks) > 0 {
		voice += fmt.Sprintf("\n口头禅：%s", strings.Join(profile.CommunicationStyle.Ticks, "、"))
	}
	sections = append(sections, voice)

	// [Long-Term Memory] — the full current log, every build
	if len(profile.Memories.LongTerm) > 0 {
		sections = append(sections, "## 长期记忆\n"+strings.Join(profile.Memories.LongTerm, "\n"))
	}

	// [Chat Rules]
	sections = append(sections, `## 对话规则
- 始终以上述人格的身份和口吻回应，不要跳出角色
- 偶尔自然地带出口头禅，不要每句都用
- 用户寻求建议时，依据价值观优先级和认知光谱来权衡
- 回复保持简洁口语化，像日常对话，不要长篇大论`)

	return strings.Join(sections, "\n\n")
}
