package insight

import (
	"fmt"
	"strings"

	"github.com/daybook-app/daybook/internal/model"
)

// The format directives below are the de-facto wire contract with the
// parsers in parse.go. Changing any of them breaks round-tripping with
// replies produced against the old wording, so they are kept byte for
// byte.

// systemPrompt frames every analysis call.
const systemPrompt = "你是一位日記分析專家，擅長分析使用者的日記並給予鼓勵與建議。"

// welcomeFeedback is served without any remote call when no entries exist.
const welcomeFeedback = "妳好，歡迎使用我們的日記！"

// failedFeedback is the user-facing fallback when the feedback slot fails.
const failedFeedback = "AI 回應失敗，請稍後再試"

// joinEntries renders entries one per line as 日期<date>：<text>.
func joinEntries(entries []*model.DiaryEntry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("日期%s：%s", e.Date, e.Text))
	}
	return strings.Join(lines, "\n")
}

func feedbackPrompt(entries []*model.DiaryEntry) string {
	return fmt.Sprintf(`你是一位專業的心理諮商師，請根據以下的日記內容，提供一段溫暖且具有建設性的回饋。
1. 觀察到的情緒模式或行為特徵
2. 值得肯定的正面行為或思維
3. 可以改善的建議（如果有的話）
4. 鼓勵的話
5. 不用稱謂，直接給建議文字. 第一行前面要空兩格

請用溫暖親切的語氣，連同標點符號一定要控制在90字以內。

日記內容：
%s`, joinEntries(entries))
}

func happinessPrompt(entries []*model.DiaryEntry) string {
	return fmt.Sprintf(`下面是使用者近一週的日記內容，請逐日分析「快樂指數」，每一天的快樂指數是0到100的數值。
回傳格式一定要是：
日期: yyyyMMdd, 快樂指數: XX
只要純資料，不要額外解釋
%s`, joinEntries(entries))
}

func emotionPrompt(entries []*model.DiaryEntry) string {
	return fmt.Sprintf(`下面是使用者近一週或近一月的日記內容，請分析所有日記的整體「情緒比例」，回傳格式如下：
快樂: 30%%
生氣: 25%%
焦慮: 15%%
悲傷: 20%%
平靜: 10%%
只要這個格式，不需要其他說明。
%s`, joinEntries(entries))
}

func topWordsPrompt(entries []*model.DiaryEntry) string {
	texts := make([]string, 0, len(entries))
	for _, e := range entries {
		texts = append(texts, e.Text)
	}
	return fmt.Sprintf(`以下是使用者近一個月的日記內容，請統計最常出現的前三個單字，回傳格式如下：
開心 12次
工作 10次
朋友 9次
只要這個格式，不要額外解釋，也不要換行輸出其他內容。
%s`, strings.Join(texts, " "))
}

func selectionPrompt(entries []*model.DiaryEntry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("日期: %s，內容: %s", e.Date, e.Text))
	}
	return fmt.Sprintf(`以下是使用者過去一個月的日記，請幫我選擇 **情緒最正面且文字最多** 的日記內容：
- 只需回傳該日記的「日期」，不要額外的說明。

%s`, strings.Join(lines, "\n"))
}

// dailyMessagePrompt asks for the one-line home-screen encouragement.
const dailyMessagePrompt = "請給我今天的鼓勵話語,30字以內。"
