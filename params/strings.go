package params

// Строки для справки

const (
	appName  = "upkextract"
	appUsage = "распаковка пакетов Unity (.unitypackage)"
	version  = "1.1.0"

	versionDesc = "Печать номера версии и выход"
	versionText = `upkextract %s
Copyright (C) 2025
Лицензия MIT: THE SOFTWARE IS PROVIDED “AS IS”, WITHOUT WARRANTY
OF ANY KIND, EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO
THE WARRANTIES OF MERCHANTABILITY, FITNESS FOR A PARTICULAR
PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE,
ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE
USE OR OTHER DEALINGS IN THE SOFTWARE.

Это свободное ПО: вы можете изменять и распространять его.
Нет НИКАКИХ ГАРАНТИЙ в пределах действующего законодательства.
`

	usageText = `upkextract [Флаги] <путь до пакета>
   upkextract [-l | -s] <путь до пакета>

Без пути к пакету и в интерактивном терминале путь
будет запрошен.`

	outputDirDesc = "Путь к директории для распаковки (по умолчанию директория пакета)"
	metaDesc      = "Записывать метаданные <путь>.meta рядом с ассетами"
	noPreviewDesc = "Не записывать превью <путь>_preview.png"
	jobsDesc      = "Число параллельных работников"
	statDesc      = "Печать статистики пакета и выход (игнорирует -l)"
	listDesc      = "Печать списка ассетов и выход"
	logDesc       = "Печатать отладочные логи"
	keepDesc      = "Не удалять временную директорию после распаковки"
)
