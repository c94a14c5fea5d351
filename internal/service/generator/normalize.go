package generator

import (
	"regexp"
	"strings"
)

// The model occasionally slips Hanja or loan-word fragments into otherwise
// Korean output. Normalize rewrites those into Hangul: a phrase pass first,
// then a single-character pass, so multi-rune fragments are replaced whole
// before the character table can tear them apart. The result is stable under
// repeated application.

// phraseFixes maps loan words and CJK compounds to their Korean equivalents.
// Latin entries match case-insensitively.
var phraseFixes = []struct {
	pattern *regexp.Regexp
	repl    string
}{
	{regexp.MustCompile(`(?i)ekonomi`), "경제"},
	{regexp.MustCompile(`(?i)economy`), "경제"},
	{regexp.MustCompile(`(?i)inflation`), "인플레이션"},
	{regexp.MustCompile(`(?i)interest rate`), "금리"},
	{regexp.MustCompile(`年的`), "년의"},
	{regexp.MustCompile(`综合`), "종합"},
}

// hanjaToHangul maps individual Hanja characters to their Korean phonetic
// readings, biased toward the finance vocabulary the model produces.
var hanjaToHangul = map[rune]rune{
	'物': '물', '價': '가', '主': '주', '要': '요', '經': '경', '濟': '제',
	'金': '금', '利': '리', '投': '투', '資': '자', '株': '주', '式': '식',
	'不': '부', '動': '동', '産': '산', '市': '시', '場': '장', '銀': '은',
	'行': '행', '政': '정', '策': '책', '貨': '화', '幣': '폐', '成': '성',
	'長': '장', '消': '소', '費': '비', '收': '수', '入': '입', '支': '지',
	'出': '출', '稅': '세', '率': '율', '債': '채', '券': '권', '企': '기',
	'業': '업', '貿': '무', '易': '역', '輸': '수', '國': '국', '際': '제',
	'世': '세', '界': '계', '社': '사', '會': '회', '問': '문', '題': '제',
	'解': '해', '決': '결', '方': '방', '法': '법', '技': '기', '術': '술',
	'發': '발', '展': '전', '變': '변', '化': '화', '未': '미', '來': '래',
	'現': '현', '在': '재', '過': '과', '去': '거', '歷': '역', '史': '사',
	'傳': '전', '統': '통', '文': '문', '敎': '교', '育': '육', '學': '학',
	'習': '습', '硏': '연', '究': '구', '分': '분', '析': '석', '評': '평',
	'基': '기', '本': '본', '原': '원', '則': '칙', '重': '중', '大': '대',
	'小': '소', '高': '고', '低': '저', '上': '상', '下': '하', '前': '전',
	'後': '후', '內': '내', '外': '외', '中': '중', '心': '심', '全': '전',
	'部': '부', '半': '반', '多': '다', '少': '소', '安': '안', '定': '정',
	'危': '위', '險': '험', '機': '기', '可': '가', '能': '능', '性': '성',
	'確': '확', '實': '실', '結': '결', '果': '과', '效': '효', '影': '영',
	'響': '향', '關': '관', '係': '계', '聯': '연', '合': '합', '協': '협',
	'力': '력', '競': '경', '爭': '쟁', '勝': '승', '敗': '패', '得': '득',
	'失': '실', '益': '익', '損': '손', '害': '해', '增': '증', '加': '가',
	'減': '감', '擴': '확', '縮': '축', '强': '강', '弱': '약', '新': '신',
	'舊': '구', '良': '양', '惡': '악', '正': '정', '負': '부', '短': '단',
	'期': '기', '間': '간',
	'综': '종', '年': '년', '的': '의', '经': '경', '济': '제',
	'发': '발', '与': '와', '对': '대', '这': '이', '个': '개', '为': '위',
}

// Normalize rewrites foreign-script fragments in generated text to Hangul.
// It is deterministic and idempotent.
func Normalize(text string) string {
	for _, fix := range phraseFixes {
		text = fix.pattern.ReplaceAllString(text, fix.repl)
	}

	return strings.Map(func(r rune) rune {
		if hangul, ok := hanjaToHangul[r]; ok {
			return hangul
		}
		return r
	}, text)
}
